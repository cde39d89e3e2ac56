package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":     {},
	"requestId":     {},
	"createdAt":     {},
	"cancelledAt":   {},
	"expiresAt":     {},
	"holdExpiresAt": {},
	"startTime":     {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

// cleanValue drops nondeterministic keys from decoded JSON, at any depth.
func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k := range val {
			if _, ok := keysToIgnore[k]; ok {
				delete(val, k)
				continue
			}
			cleanValue(val[k])
		}
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

func decodeBody[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	query, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(query))
	require.NoError(t, err)
}

func flushAllCache(t testing.TB, client *redis.Client) {
	t.Helper()

	require.NoError(t, client.FlushAll(context.Background()).Err())
}

// readEvents returns every event published to the test stream, oldest first.
func readEvents(t testing.TB, client *redis.Client) []domain.Event {
	t.Helper()

	entries, err := client.XRange(context.Background(), eventStream, "-", "+").Result()
	require.NoError(t, err)

	events := make([]domain.Event, 0, len(entries))
	for _, entry := range entries {
		payload, ok := entry.Values["payload"].(string)
		require.True(t, ok, "stream entry %s has no payload", entry.ID)

		var event domain.Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		require.Equal(t, string(event.Type), entry.Values["type"])

		events = append(events, event)
	}

	return events
}

func setupBaseShowState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/shows_down.sql")
	flushAllCache(t, app.RedisClient)

	executeSQLFile(t, app.DB, "testdata/shows_up.sql")
}
