package aggregate_test

import (
	"testing"

	"github.com/okian/wcdash/internal/domain/aggregate"
	"github.com/okian/wcdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWinCounts(t *testing.T) {
	Convey("Given normalized finals", t, func() {
		Convey("When there are no records", func() {
			counts := aggregate.WinCounts(nil)

			Convey("Then the result should be empty but not nil", func() {
				So(counts, ShouldNotBeNil)
				So(counts, ShouldBeEmpty)
			})
		})

		Convey("When countries win different numbers of finals", func() {
			records := []types.MatchRecord{
				{Year: 1930, Winner: "Uruguay", RunnerUp: "Argentina"},
				{Year: 1934, Winner: "Italy", RunnerUp: "Czechoslovakia"},
				{Year: 1938, Winner: "Italy", RunnerUp: "Hungary"},
				{Year: 1950, Winner: "Uruguay", RunnerUp: "Brazil"},
				{Year: 1954, Winner: "Germany", RunnerUp: "Hungary"},
				{Year: 1958, Winner: "Brazil", RunnerUp: "Sweden"},
				{Year: 1962, Winner: "Brazil", RunnerUp: "Czechoslovakia"},
				{Year: 1970, Winner: "Brazil", RunnerUp: "Italy"},
			}
			counts := aggregate.WinCounts(records)

			Convey("Then they should be ordered by wins, ties by first appearance", func() {
				So(counts, ShouldResemble, []types.CountryWinCount{
					{Country: "Brazil", Wins: 3},
					{Country: "Uruguay", Wins: 2},
					{Country: "Italy", Wins: 2},
					{Country: "Germany", Wins: 1},
				})
			})

			Convey("And the wins should sum to the number of finals", func() {
				So(aggregate.Total(counts), ShouldEqual, len(records))
			})
		})

		Convey("When every final has a different winner", func() {
			records := []types.MatchRecord{
				{Year: 1966, Winner: "England"},
				{Year: 1978, Winner: "Argentina"},
				{Year: 1998, Winner: "France"},
			}
			counts := aggregate.WinCounts(records)

			Convey("Then source order should be preserved", func() {
				So(counts[0].Country, ShouldEqual, "England")
				So(counts[1].Country, ShouldEqual, "Argentina")
				So(counts[2].Country, ShouldEqual, "France")
				So(aggregate.Total(counts), ShouldEqual, 3)
			})
		})
	})
}
