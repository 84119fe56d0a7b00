package types_test

import (
	"testing"

	types "github.com/okian/wcdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRawTableColumns(t *testing.T) {
	Convey("Given raw tables", t, func() {
		Convey("When the table is empty", func() {
			So(types.RawTable{}.Columns(), ShouldEqual, 0)
		})

		Convey("When rows are wider than the header", func() {
			tbl := types.RawTable{
				Header: []string{"Year", "Winners"},
				Rows:   [][]string{{"1930", "Uruguay", "4-2"}},
			}
			So(tbl.Columns(), ShouldEqual, 3)
		})

		Convey("When the header is the widest", func() {
			tbl := types.RawTable{
				Header: []string{"Year", "Winners", "Score", "Runners-up", "Venue", "Attendance"},
				Rows:   [][]string{{"1930"}},
			}
			So(tbl.Columns(), ShouldEqual, 6)
		})
	})
}
