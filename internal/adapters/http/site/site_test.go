package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered dashboard site", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		serve := func(method, target string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, target, http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When requesting the root page", func() {
			w := serve(http.MethodGet, "/")

			Convey("Then it should serve the dashboard", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, `id="map"`)
				So(w.Body.String(), ShouldContainSubstring, `id="country"`)
				So(w.Body.String(), ShouldContainSubstring, `id="year"`)
			})
		})

		Convey("When requesting the script", func() {
			w := serve(http.MethodGet, "/app.js")

			Convey("Then it should draw a choropleth by country name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `locationmode: "country names"`)
				So(w.Body.String(), ShouldContainSubstring, "/api/wins")
				So(w.Body.String(), ShouldContainSubstring, "World Cup Wins by Country")
				So(w.Body.String(), ShouldContainSubstring, "PLASMA")
			})
		})

		Convey("When requesting the stylesheet", func() {
			So(serve(http.MethodGet, "/style.css").Code, ShouldEqual, http.StatusOK)
		})

		Convey("When requesting an unknown asset", func() {
			So(serve(http.MethodGet, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When posting to the page", func() {
			w := serve(http.MethodPost, "/")

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() { Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
