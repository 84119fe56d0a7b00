package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/wcdash/internal/adapters/source"
	"github.com/okian/wcdash/internal/config"
	"github.com/okian/wcdash/internal/domain/dedupe"
	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const finalsPage = `<!DOCTYPE html>
<html><body>
<table class="wikitable">
  <tr><th>Year</th><th>Winners</th><th>Score</th><th>Runners-up</th><th>Venue</th><th>Location</th><th>Attendance</th></tr>
  <tr><th>1954</th><td>West Germany</td><td>3–2</td><td>Hungary</td><td>Wankdorf Stadium</td><td>Bern</td><td>62,500</td></tr>
  <tr><th>1986</th><td>Argentina</td><td>3–2</td><td>West Germany</td><td>Estadio Azteca</td><td>Mexico City</td><td>114,600</td></tr>
  <tr><th>2014</th><td>Germany</td><td>1–0</td><td>Argentina</td><td>Maracanã</td><td>Rio de Janeiro</td><td>74,738</td></tr>
</table>
</body></html>`

func init() {
	_ = logger.Init()
}

func sourceServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func testConfig(sourceURL string) *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.SourceURL = sourceURL
	cfg.FetchTimeoutMS = 5000
	return cfg
}

func TestNewService(t *testing.T) {
	Convey("Given a configuration", t, func() {
		cfg := testConfig("http://127.0.0.1/finals")

		Convey("When the duplicate policy is valid", func() {
			svc, err := newService(cfg, logger.Get())

			Convey("Then the service should be built but not started", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(svc.GetStats()["policy"], ShouldEqual, string(dedupe.PolicyFirst))
			})
		})

		Convey("When the duplicate policy is unknown", func() {
			cfg.DuplicateYears = "last"
			svc, err := newService(cfg, logger.Get())

			Convey("Then construction should fail", func() {
				So(svc, ShouldBeNil)
				So(errors.Is(err, dedupe.ErrUnknownPolicy), ShouldBeTrue)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a reachable finals source", t, func() {
		src := sourceServer(http.StatusOK, finalsPage)
		defer src.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ready := make(chan string, 1)
		done := make(chan error, 1)
		go func() { done <- run(ctx, testConfig(src.URL), logger.Get(), ready) }()

		var addr string
		select {
		case addr = <-ready:
		case err := <-done:
			t.Fatalf("run exited early: %v", err)
		case <-time.After(10 * time.Second):
			t.Fatal("server did not become ready")
		}
		client := resty.New().SetBaseURL("http://" + addr).SetTimeout(5 * time.Second)

		Convey("When the country lookup is requested", func() {
			var res query.CountryResult
			resp, err := client.R().SetQueryParam("name", "Germany").SetResult(&res).Get("/api/country")

			Convey("Then it should count the legacy name as Germany", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode(), ShouldEqual, http.StatusOK)
				So(res.Text, ShouldEqual, "Germany has won 2 World Cup(s).")
			})
		})

		Convey("When the year lookup is requested", func() {
			var res query.YearResult
			_, err := client.R().SetQueryParam("year", "1986").SetResult(&res).Get("/api/year")

			Convey("Then the runner-up should use the current name", func() {
				So(err, ShouldBeNil)
				So(res.Text, ShouldEqual, "In 1986, Argentina won and Germany was the runner-up.")
			})
		})

		Convey("When the dashboard page is requested", func() {
			resp, err := client.R().Get("/")

			Convey("Then it should be served", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode(), ShouldEqual, http.StatusOK)
				So(resp.String(), ShouldContainSubstring, "FIFA World Cup")
			})
		})

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then run should shut down cleanly", func() {
				select {
				case err := <-done:
					So(err, ShouldBeNil)
				case <-time.After(10 * time.Second):
					t.Fatal("run did not return after cancel")
				}
			})
		})
	})
}

func TestRunStartupFailure(t *testing.T) {
	Convey("Given a source that fails", t, func() {
		Convey("When the source answers 404", func() {
			src := sourceServer(http.StatusNotFound, "gone")
			defer src.Close()

			err := run(context.Background(), testConfig(src.URL), logger.Get(), nil)

			Convey("Then run should fail before listening", func() {
				So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			})
		})

		Convey("When the page has no finals table", func() {
			src := sourceServer(http.StatusOK, "<html><body><p>nothing</p></body></html>")
			defer src.Close()

			err := run(context.Background(), testConfig(src.URL), logger.Get(), nil)

			Convey("Then run should report the missing table", func() {
				So(errors.Is(err, source.ErrTableNotFound), ShouldBeTrue)
			})
		})
	})
}
