package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(statuses []int) (*Client, *[]time.Duration, *httptest.Server) {
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := statuses[len(statuses)-1]
		if call < len(statuses) {
			status = statuses[call]
		}
		call++
		w.WriteHeader(status)
		w.Write([]byte("body"))
	}))

	client := New(Options{Timeout: time.Second})
	var slept []time.Duration
	client.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return client, &slept, server
}

func TestGetReturnsImmediatelyOn200(t *testing.T) {
	client, slept, server := newTestClient([]int{http.StatusOK})
	defer server.Close()

	res, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	require.Empty(t, *slept)
}

func TestGetBacksOffLinearlyOn429(t *testing.T) {
	client, slept, server := newTestClient([]int{
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusOK,
	})
	defer server.Close()

	res, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestGetExhaustsBudget(t *testing.T) {
	client, _, server := newTestClient([]int{http.StatusInternalServerError})
	defer server.Close()

	res, err := client.Get(context.Background(), server.URL)
	require.ErrorIs(t, err, ErrBudgetExhausted)
	require.Nil(t, res)
}

func TestGetRetriesTransportFailure(t *testing.T) {
	client := New(Options{Timeout: time.Second})
	var slept []time.Duration
	client.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	// a closed server produces connection errors on every attempt
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	res, err := client.Get(context.Background(), url)
	require.ErrorIs(t, err, ErrBudgetExhausted)
	require.Nil(t, res)
	require.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, slept)
}
