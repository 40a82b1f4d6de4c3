package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nepjobs-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// delay applied between successive detail-page requests so the source
// server isn't hammered. a throughput cap, not a correctness knob.
const PolitenessDelay = 500 * time.Millisecond

const DefaultRetries = 3

// the request was retried up to the budget without ever getting a
// 200 back. callers should skip the item, this is never fatal.
var ErrBudgetExhausted = fmt.Errorf("retry budget exhausted")

type Options struct {
	// defaults to 15s
	Timeout time.Duration
	// defaults to DefaultRetries
	Retries int
	Headers map[string]string
	// routes requests through the cloudflare bypass transport, needed
	// for sources fronted by bot protection
	CloudflareBypass bool
	TracerName       string
}

type Client struct {
	Http    *resty.Client
	retries int
	sleep   func(time.Duration)
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 15
	}
	retries := opts.Retries
	if retries == 0 {
		retries = DefaultRetries
	}

	client := resty.New()
	client.SetTimeout(timeout)
	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.TracerName != "" {
		telemetry.InstrumentResty(client, opts.TracerName)
	}

	return &Client{
		Http:    client,
		retries: retries,
		sleep:   time.Sleep,
	}
}

// issues one GET with a bounded retry budget. a 200 returns
// immediately; a 429 backs off 2×attempt seconds; a transport failure
// backs off 1 second; any other status burns an attempt without
// sleeping. returns ErrBudgetExhausted once the budget is spent.
func (c *Client) Get(ctx context.Context, url string) (*resty.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		res, err := c.Http.R().SetContext(ctx).Get(url)
		if err != nil {
			lastErr = err
			c.sleep(time.Second)
			continue
		}

		switch res.StatusCode() {
		case http.StatusOK:
			return res, nil
		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("status %d", res.StatusCode())
			c.sleep(time.Duration(2*attempt) * time.Second)
		default:
			lastErr = fmt.Errorf("status %d", res.StatusCode())
		}
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrBudgetExhausted, url, lastErr)
}

// sleeps for the politeness delay. the caller invokes this between
// successive detail fetches.
func (c *Client) Pause() {
	c.sleep(PolitenessDelay)
}
