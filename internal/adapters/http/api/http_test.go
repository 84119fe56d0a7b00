package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/okian/wcdash/internal/adapters/http/api"
	repository "github.com/okian/wcdash/internal/adapters/repository"
	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies answers from a real Dataset unless err is set.
type mockDependencies struct {
	ds       *repository.Dataset
	err      error
	lastYear *int
}

func (m *mockDependencies) Standings(ctx context.Context) ([]types.CountryWinCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ds.Standings(ctx), nil
}

func (m *mockDependencies) Countries(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ds.Countries(ctx), nil
}

func (m *mockDependencies) Years(ctx context.Context) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ds.Years(ctx), nil
}

func (m *mockDependencies) Finals(ctx context.Context) ([]types.MatchRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ds.Finals(ctx), nil
}

func (m *mockDependencies) CountryStats(_ context.Context, country string) (query.CountryResult, error) {
	if m.err != nil {
		return query.CountryResult{}, m.err
	}
	return query.Country(m.ds, country), nil
}

func (m *mockDependencies) YearStats(_ context.Context, year *int) (query.YearResult, error) {
	m.lastYear = year
	if m.err != nil {
		return query.YearResult{}, m.err
	}
	return query.Year(m.ds, year), nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}).
		Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func fixtureDataset() *repository.Dataset {
	return repository.NewDataset([]types.MatchRecord{
		{Year: 2014, Winner: "Germany", RunnerUp: "Argentina"},
		{Year: 1974, Winner: "Germany", RunnerUp: "Netherlands"},
		{Year: 1986, Winner: "Argentina", RunnerUp: "Germany"},
		{Year: 1990, Winner: "Germany", RunnerUp: "Argentina"},
	})
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{ds: fixtureDataset()}
		mux := newMux(deps)

		Convey("When requesting the map feed", func() {
			w := get(mux, "/api/wins")

			Convey("Then it should list countries by wins", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				var wins []api.WinCount
				So(json.Unmarshal(w.Body.Bytes(), &wins), ShouldBeNil)
				So(wins, ShouldResemble, []api.WinCount{
					{Country: "Germany", Wins: 3},
					{Country: "Argentina", Wins: 1},
				})
			})
		})

		Convey("When requesting the selectors", func() {
			countries := get(mux, "/api/countries")
			years := get(mux, "/api/years")

			Convey("Then they should return the value sets", func() {
				So(countries.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(countries.Body.String()), ShouldEqual, `["Germany","Argentina"]`)
				So(years.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(years.Body.String()), ShouldEqual, `[1974,1986,1990,2014]`)
			})
		})

		Convey("When requesting the finals table", func() {
			w := get(mux, "/api/finals")

			Convey("Then it should return every final", func() {
				var finals []api.Final
				So(json.Unmarshal(w.Body.Bytes(), &finals), ShouldBeNil)
				So(len(finals), ShouldEqual, 4)
				So(finals[0].RunnerUp, ShouldEqual, "Argentina")
			})
		})

		Convey("When requesting stats and metrics", func() {
			So(get(mux, "/stats").Code, ShouldEqual, http.StatusOK)
			So(get(mux, "/healthz").Code, ShouldEqual, http.StatusOK)
		})

		Convey("When posting to a read-only route", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/wins", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
			})
		})

		Convey("When any route is hit", func() {
			w := get(mux, "/api/years")

			Convey("Then a request id should be attached", func() {
				_, err := uuid.Parse(w.Header().Get(api.RequestIDHeader))
				So(err, ShouldBeNil)
			})

			Convey("And a caller-provided id should be echoed", func() {
				id := uuid.NewString()
				req := httptest.NewRequest(http.MethodGet, "/api/years", http.NoBody)
				req.Header.Set(api.RequestIDHeader, id)
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, id)
			})
		})
	})
}

func TestLookupHandler(t *testing.T) {
	Convey("Given the lookup routes", t, func() {
		deps := &mockDependencies{ds: fixtureDataset()}
		mux := newMux(deps)

		Convey("When no country is selected", func() {
			var res api.CountryResult
			w := get(mux, "/api/country")
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)

			Convey("Then the result should be empty", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(res.Status, ShouldEqual, query.StatusEmpty)
				So(res.Text, ShouldEqual, "")
			})
		})

		Convey("When an unknown country is selected", func() {
			var res api.CountryResult
			w := get(mux, "/api/country?name=Netherlands")
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)

			Convey("Then it should answer with no data, not an error", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(res.Status, ShouldEqual, query.StatusNoData)
				So(res.Text, ShouldEqual, query.NoCountryData)
			})
		})

		Convey("When a known country is selected", func() {
			var res api.CountryResult
			w := get(mux, "/api/country?name=Germany")
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)

			Convey("Then it should report the wins", func() {
				So(res.Text, ShouldEqual, "Germany has won 3 World Cup(s).")
				So(res.Wins, ShouldEqual, 3)
			})
		})

		Convey("When a known year is selected", func() {
			var res api.YearResult
			w := get(mux, "/api/year?year=1990")
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)

			Convey("Then it should describe the final", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(res.Text, ShouldEqual, "In 1990, Germany won and Argentina was the runner-up.")
				So(res.Final, ShouldNotBeNil)
				So(res.Final.Year, ShouldEqual, 1990)
			})
		})

		Convey("When no year is selected", func() {
			w := get(mux, "/api/year")

			Convey("Then the service should see a nil year", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastYear, ShouldBeNil)
				So(w.Body.String(), ShouldContainSubstring, `"status":"empty"`)
			})
		})

		Convey("When a year without a final is selected", func() {
			w := get(mux, "/api/year?year=1942")

			Convey("Then it should answer with no data", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, query.NoYearData)
			})
		})

		Convey("When the year is not a number", func() {
			w := get(mux, "/api/year?year=nineteen")

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})
	})
}

func TestHandlers_NotReady(t *testing.T) {
	Convey("Given a service whose dataset is not loaded", t, func() {
		mux := newMux(&mockDependencies{err: repository.ErrNotLoaded})

		Convey("When the data routes are requested", func() {
			for _, target := range []string{"/api/wins", "/api/countries", "/api/years", "/api/finals", "/api/country?name=Italy", "/api/year?year=1934"} {
				w := get(mux, target)

				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Body.String(), ShouldContainSubstring, "not_ready")
			}
		})
	})
}

func TestRegister_NilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		server := api.NewServer(&mockDependencies{}, &mockStatsProvider{})

		Convey("Then registering should panic", func() {
			So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
