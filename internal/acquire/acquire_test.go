package acquire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacckNew/ietf-weavers/internal/httputil"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testClient(baseURL string, cfg types.AcquisitionConfig) *Client {
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg, nil)
}

// archiveServer serves a two-page response for list "quic" and a
// one-page response for "tls".
func archiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list := r.URL.Query().Get("email_list")
		page := r.URL.Query().Get("page")

		var resp messagePage
		switch {
		case list == "quic" && page == "":
			resp = messagePage{
				Count: 3,
				Next:  ts.URL + "/message/?email_list=quic&page=2",
				Results: []types.Email{
					{From: "alice@example.com", MessageID: "<q1@x>"},
					{From: "bob@example.com", MessageID: "<q2@x>"},
				},
			}
		case list == "quic" && page == "2":
			resp = messagePage{
				Count: 3,
				Results: []types.Email{
					{From: "carol@example.com", MessageID: "<q3@x>"},
				},
			}
		case list == "tls":
			resp = messagePage{
				Count: 2,
				Results: []types.Email{
					{From: "alice@example.com", MessageID: "<t1@x>"},
					// Cross-posted duplicate of a quic message.
					{From: "bob@example.com", MessageID: "<q2@x>"},
				},
			}
		default:
			http.NotFound(w, r)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	return ts
}

func TestFetchListFollowsPagination(t *testing.T) {
	ts := archiveServer(t)
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	emails, err := c.FetchList(context.Background(), "quic", Request{})
	require.NoError(t, err)

	require.Len(t, emails, 3)
	assert.Equal(t, "<q1@x>", emails[0].MessageID)
	assert.Equal(t, "<q3@x>", emails[2].MessageID)
	assert.Equal(t, "quic", emails[0].List(), "list name filled in when missing")
}

func TestFetchListHonorsMaxMessages(t *testing.T) {
	ts := archiveServer(t)
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{MaxMessages: 2})
	emails, err := c.FetchList(context.Background(), "quic", Request{})
	require.NoError(t, err)
	assert.Len(t, emails, 2)
}

func TestFetchAllMergesAndDeduplicates(t *testing.T) {
	ts := archiveServer(t)
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	emails, err := c.FetchAll(context.Background(), Request{Lists: []string{"quic", "tls"}})
	require.NoError(t, err)

	// 3 quic + 2 tls, minus the cross-posted <q2@x>.
	require.Len(t, emails, 4)
	seen := make(map[string]int)
	for _, e := range emails {
		seen[e.MessageID]++
	}
	assert.Equal(t, 1, seen["<q2@x>"])
}

func TestFetchAllToleratesOneFailedList(t *testing.T) {
	ts := archiveServer(t)
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	emails, err := c.FetchAll(context.Background(), Request{Lists: []string{"quic", "absent"}})
	require.NoError(t, err)
	assert.Len(t, emails, 3)
}

func TestFetchAllFailsWhenEveryListFails(t *testing.T) {
	ts := archiveServer(t)
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	_, err := c.FetchAll(context.Background(), Request{Lists: []string{"absent", "missing"}})
	require.Error(t, err)
}

func TestFetchAllRequiresLists(t *testing.T) {
	c := testClient("http://127.0.0.1:0", types.AcquisitionConfig{})
	_, err := c.FetchAll(context.Background(), Request{})
	require.Error(t, err)
}

func TestFetchListRetriesOnRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(messagePage{
			Results: []types.Email{{From: "alice@example.com", MessageID: "<1@x>"}},
		})
	}))
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	emails, err := c.FetchList(context.Background(), "quic", Request{})
	require.NoError(t, err)
	assert.Len(t, emails, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchListSendsDateFilters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-06-30", r.URL.Query().Get("end_date"))
		json.NewEncoder(w).Encode(messagePage{})
	}))
	defer ts.Close()

	c := testClient(ts.URL, types.AcquisitionConfig{})
	_, err := c.FetchList(context.Background(), "quic", Request{
		StartDate: "2024-01-01",
		EndDate:   "2024-06-30",
	})
	require.NoError(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "emails.json")
	emails := []types.Email{{From: "alice@example.com", MessageID: "<1@x>"}}
	require.NoError(t, Save(path, emails))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []types.Email
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "<1@x>", decoded[0].MessageID)
}
