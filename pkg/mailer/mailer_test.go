package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"welcome.md": &fstest.MapFile{
			Data: []byte("---\nSubject: \"Welcome {{.Name}}\"\n---\nHello **{{user .Name}}**!\n"),
		},
		"plain.md": &fstest.MapFile{
			Data: []byte("Hello world\n"),
		},
	}
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("renders and returns provider id", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html", FallbackSubject: "Notification"})

		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
			return e.To[0] == "alice@example.com" &&
				e.Subject == "Welcome Alice" &&
				e.ReplyTo == "bob@example.com" &&
				e.Tags["category"] == "test" &&
				e.Text == "Hello **Alice**!\n"
		})).Return("msg_123", nil)

		id, err := m.Send(context.Background(), SendParams{
			To:       "alice@example.com",
			ReplyTo:  "bob@example.com",
			Template: "welcome.md",
			Data:     map[string]string{"Name": "Alice"},
			Tags:     Tags{"category": "test"},
		})
		require.NoError(t, err)
		require.Equal(t, "msg_123", id)
		sender.AssertExpectations(t)
	})

	t.Run("requires recipient", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

		_, err := m.Send(context.Background(), SendParams{Template: "welcome.md"})
		require.ErrorIs(t, err, ErrNoRecipient)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("wraps render failures", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

		_, err := m.Send(context.Background(), SendParams{To: "a@example.com", Template: "missing.md"})
		require.ErrorIs(t, err, ErrRenderFailed)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("wraps sender failures", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html", FallbackSubject: "Hi"})

		providerErr := errors.New("provider unavailable")
		sender.On("Send", mock.Anything, mock.Anything).Return("", providerErr)

		id, err := m.Send(context.Background(), SendParams{To: "a@example.com", Template: "plain.md"})
		require.ErrorIs(t, err, ErrSendFailed)
		require.ErrorIs(t, err, providerErr)
		require.Empty(t, id)
	})
}

func TestMailer_Render_Subject(t *testing.T) {
	t.Parallel()

	m := New(&MockSender{}, NewRenderer(testFS()), Config{DefaultLayout: "base.html", FallbackSubject: "Fallback"})

	tests := []struct {
		name   string
		params SendParams
		want   string
	}{
		{
			name:   "explicit subject wins",
			params: SendParams{To: "a@example.com", Template: "welcome.md", Subject: "Custom {{.Name}}", Data: map[string]string{"Name": "Ann"}},
			want:   "Custom Ann",
		},
		{
			name:   "frontmatter subject",
			params: SendParams{To: "a@example.com", Template: "welcome.md", Data: map[string]string{"Name": "Ann"}},
			want:   "Welcome Ann",
		},
		{
			name:   "fallback subject",
			params: SendParams{To: "a@example.com", Template: "plain.md"},
			want:   "Fallback",
		},
		{
			name:   "folds line breaks",
			params: SendParams{To: "a@example.com", Template: "welcome.md", Data: map[string]string{"Name": "Ann\r\nBcc: x@example.com"}},
			want:   "Welcome Ann Bcc: x@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			email, err := m.Render(tt.params)
			require.NoError(t, err)
			require.Equal(t, tt.want, email.Subject)
		})
	}
}

func TestMailer_Render_EmptySubject(t *testing.T) {
	t.Parallel()

	m := New(&MockSender{}, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

	_, err := m.Render(SendParams{To: "a@example.com", Template: "plain.md"})
	require.ErrorIs(t, err, ErrNoSubject)
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Jane <jane@example.com>", Recipient("Jane", "jane@example.com"))
	require.Equal(t, "jane@example.com", Recipient("", "jane@example.com"))
}
