package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

// fetchedItem is one raw unread message before it is wrapped in a commit
// handle.
type fetchedItem struct {
	uid     uint32
	sender  string
	subject string
	body    string
}

// Reader is an IMAP implementation of the MailboxReader interface. Fetch
// uses a body peek so messages stay unread until their outcome has been
// recorded; the per-message Commit handle stores the \Seen flag.
type Reader struct {
	host     string
	port     int
	username string
	password string
	mailbox  string
	logger   *zap.Logger

	fetchUnread func(ctx context.Context) ([]fetchedItem, error)
	markSeen    func(ctx context.Context, uids ...uint32) error
}

// NewReader creates a new IMAP mailbox reader
func NewReader(host string, port int, username, password, mailbox string, logger *zap.Logger) *Reader {
	if port < 1 {
		port = 993
	}
	if strings.TrimSpace(mailbox) == "" {
		mailbox = "INBOX"
	}
	r := &Reader{
		host:     strings.TrimSpace(host),
		port:     port,
		username: strings.TrimSpace(username),
		password: password,
		mailbox:  mailbox,
		logger:   logger,
	}
	r.fetchUnread = r.fetchUnreadFromIMAP
	r.markSeen = r.markSeenInIMAP
	return r
}

// FetchUnseen returns the currently unread messages that carry an
// extractable plain-text body. Payload-less messages are marked seen right
// away so they are not refetched every cycle.
func (r *Reader) FetchUnseen(ctx context.Context) ([]*core.FetchedMessage, error) {
	if r.username == "" || r.password == "" {
		return nil, core.ErrMissingCredentials
	}

	items, err := r.fetchUnread(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var messages []*core.FetchedMessage
	var emptyUIDs []uint32
	for _, item := range items {
		if strings.TrimSpace(item.body) == "" {
			r.logger.Warn("Discarding message with no plain-text payload",
				zap.Uint32("uid", item.uid),
				zap.String("sender", item.sender))
			emptyUIDs = append(emptyUIDs, item.uid)
			continue
		}
		uid := item.uid
		messages = append(messages, &core.FetchedMessage{
			InboundMessage: core.InboundMessage{
				Sender:  item.sender,
				Subject: item.subject,
				Body:    strings.TrimSpace(item.body),
			},
			Commit: func() error {
				return r.markSeen(context.Background(), uid)
			},
		})
	}

	if len(emptyUIDs) > 0 {
		if err := r.markSeen(ctx, emptyUIDs...); err != nil {
			r.logger.Error("Failed to mark payload-less messages seen", zap.Error(err))
		}
	}
	return messages, nil
}

func (r *Reader) openClient(ctx context.Context) (*client.Client, error) {
	address := fmt.Sprintf("%s:%d", r.host, r.port)
	tlsConfig := &tls.Config{
		ServerName: r.host,
		MinVersion: tls.VersionTLS12,
	}
	c, err := client.DialTLS(address, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("imap dial: %w", err)
	}
	select {
	case <-ctx.Done():
		c.Logout()
		return nil, ctx.Err()
	default:
	}
	if err := c.Login(r.username, r.password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

func (r *Reader) fetchUnreadFromIMAP(ctx context.Context) ([]fetchedItem, error) {
	c, err := r.openClient(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	if _, err := c.Select(r.mailbox, false); err != nil {
		return nil, fmt.Errorf("imap select mailbox: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	uids, err := c.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("imap search unread: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	set := new(imap.SeqSet)
	set.AddNum(uids...)
	// Peek keeps the fetch from setting \Seen; that is the commit's job.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{
		imap.FetchUid,
		imap.FetchEnvelope,
		section.FetchItem(),
	}
	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(set, items, messages)
	}()

	results := make([]fetchedItem, 0, len(uids))
	for fetched := range messages {
		bodyReader := fetched.GetBody(section)
		if bodyReader == nil {
			continue
		}
		item := fetchedItem{uid: fetched.Uid}
		if fetched.Envelope != nil {
			item.subject = strings.TrimSpace(fetched.Envelope.Subject)
			item.sender = formatAddresses(fetched.Envelope.From)
		}
		item.body = extractPlainText(bodyReader, r.logger)
		results = append(results, item)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch unread: %w", err)
	}
	return results, nil
}

func (r *Reader) markSeenInIMAP(ctx context.Context, uids ...uint32) error {
	if len(uids) == 0 {
		return nil
	}
	c, err := r.openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Logout()

	if _, err := c.Select(r.mailbox, false); err != nil {
		return fmt.Errorf("imap select mailbox: %w", err)
	}
	set := new(imap.SeqSet)
	set.AddNum(uids...)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := c.UidStore(set, item, []interface{}{imap.SeenFlag}, nil); err != nil {
		return fmt.Errorf("imap mark seen: %w", err)
	}
	return nil
}

func formatAddresses(addresses []*imap.Address) string {
	parts := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if addr == nil {
			continue
		}
		bare := addr.MailboxName + "@" + addr.HostName
		if name := strings.TrimSpace(addr.PersonalName); name != "" {
			parts = append(parts, fmt.Sprintf("%s <%s>", name, bare))
		} else {
			parts = append(parts, bare)
		}
	}
	return strings.Join(parts, ", ")
}
