package benchmark

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

func TestResultChannel(t *testing.T) {
	Convey("While accumulating trial results", t, func() {
		channel, err := NewResultChannel()
		So(err, ShouldBeNil)
		defer channel.Close()

		Convey("The scratch directory should exist", func() {
			_, err := os.Stat(channel.Dir())
			So(err, ShouldBeNil)
		})

		Convey("Successful reports should append their deltas", func() {
			channel.Record(0, Report{DeltaMB: 1.5})
			channel.Record(1, Report{DeltaMB: 2.5})

			So(channel.Deltas(), ShouldResemble, []float64{1.5, 2.5})
			So(channel.FirstError(), ShouldBeNil)
		})

		Convey("A report carrying an error should not contribute a delta", func() {
			channel.Record(0, Report{DeltaMB: 1.5, Error: "add failed"})

			So(channel.Deltas(), ShouldBeEmpty)
			So(channel.FirstError(), ShouldNotBeNil)
			So(channel.FirstError().Error(), ShouldContainSubstring, "trial 0")
			So(channel.FirstError().Error(), ShouldContainSubstring, "add failed")
		})

		Convey("The first recorded error should win", func() {
			channel.RecordFailure(3, errors.New("timed out"))
			channel.Record(4, Report{Error: "crashed"})

			So(channel.FirstError().Error(), ShouldContainSubstring, "timed out")
		})

		Convey("The last successful snapshot should win", func() {
			first := []subject.Record{{ID: 1, Name: "task_name1"}}
			second := []subject.Record{{ID: 1, Name: "task_name1"}, {ID: 2, Name: "task_name2"}}

			channel.Record(0, Report{Snapshot: first})
			channel.Record(1, Report{Snapshot: second})
			channel.Record(2, Report{Error: "crashed", Snapshot: first})

			snapshot, ok := channel.Snapshot()
			So(ok, ShouldBeTrue)
			So(snapshot, ShouldResemble, second)
		})

		Convey("Without any snapshot the slot should stay empty", func() {
			channel.Record(0, Report{DeltaMB: 1})

			_, ok := channel.Snapshot()
			So(ok, ShouldBeFalse)
		})

		Convey("Close should remove the scratch directory", func() {
			dir := channel.Dir()
			channel.Close()

			_, err := os.Stat(dir)
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})
}
