package devserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/form"
	"github.com/goliatone/go-fiche/pkg/logging"
	"github.com/goliatone/go-fiche/pkg/session"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/testsupport"
)

func startServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	opts = append([]Option{WithBasePath("/api"), WithLogger(logging.Discard())}, opts...)
	s, err := New(opts...)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Router)
	t.Cleanup(srv.Close)
	return s, srv.URL + "/api"
}

func newSubmitter(t *testing.T, baseURL string, rec *submission.Recorder, opts ...api.Option) *submission.Submitter {
	t.Helper()
	client, err := api.New(baseURL, opts...)
	require.NoError(t, err)
	contract, err := submission.DefaultContract()
	require.NoError(t, err)
	return submission.NewSubmitter(submission.NewHTTPEndpoint(client),
		submission.WithNotifier(rec),
		submission.WithContract(contract),
		submission.WithLogger(logging.Discard()),
	)
}

func TestSubmissionAccepted(t *testing.T) {
	s, base := startServer(t)
	rec := &submission.Recorder{}
	sub := newSubmitter(t, base, rec)

	f := form.New(form.WithInitial(testsupport.ValidSnapshot()), form.WithLogger(logging.Discard()))
	payload, err := sub.Submit(testsupport.Context(), f)
	require.NoError(t, err)

	records := s.Records()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, payload.Theme, records[0].Payload.Theme)
	assert.Equal(t, []string{"INS-2024-001"}, records[0].Payload.Inscriptions)
	assert.Equal(t, submission.LevelSuccess, rec.Notifications()[0].Level)
}

func TestDuplicateThemeMapsToField(t *testing.T) {
	s, base := startServer(t)
	rec := &submission.Recorder{}
	sub := newSubmitter(t, base, rec)
	ctx := testsupport.Context()

	first := form.New(form.WithInitial(testsupport.ValidSnapshot()), form.WithLogger(logging.Discard()))
	_, err := sub.Submit(ctx, first)
	require.NoError(t, err)

	second := form.New(form.WithInitial(testsupport.ValidSnapshot()), form.WithLogger(logging.Discard()))
	_, err = sub.Submit(ctx, second)
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusUnprocessableEntity), "err = %v", err)

	assert.Equal(t, []string{MessageDuplicateTheme}, second.ErrorsFor(fiche.PathSujetTheme))
	assert.Equal(t, testsupport.ValidSnapshot(), second.Snapshot())
	assert.Len(t, s.Records(), 1)

	got := rec.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, submission.LevelError, got[1].Level)
}

func TestContractViolationReturnsFieldErrors(t *testing.T) {
	_, base := startServer(t)
	client, err := api.New(base)
	require.NoError(t, err)

	err = client.PostJSON(context.Background(), submission.RouteFormationPratiques, map[string]any{
		"theme":  "Sujet",
		"niveau": "D1",
	}, nil)
	apiErr, ok := api.AsError(err)
	require.True(t, ok, "err = %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Fields)
}

func TestTokenGuard(t *testing.T) {
	_, base := startServer(t, WithToken("secret"))

	anonymous, err := api.New(base)
	require.NoError(t, err)
	_, err = directory.NewHTTP(anonymous).Parcours(context.Background(), directory.Query{})
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized), "err = %v", err)

	authed, err := api.New(base, api.WithSession(session.New(session.Credentials{Token: "secret"})))
	require.NoError(t, err)
	page, err := directory.NewHTTP(authed).Parcours(context.Background(), directory.Query{})
	require.NoError(t, err)
	assert.NotEmpty(t, page.Data)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, err := New(WithAddr("127.0.0.1:0"), WithLogger(logging.Discard()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("run: %v", err)
	}
}
