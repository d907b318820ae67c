package benchmark

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

func smallAddPhase(iterations int) Descriptor {
	phase := AddPhase()
	phase.Iterations = iterations
	return phase
}

func TestRunTrial(t *testing.T) {
	Convey("While running a trial in-process", t, func() {
		Convey("The add phase should report a delta and a snapshot", func() {
			report := RunTrial(WorkerConfig{
				Module: "chatgpt",
				Phase:  smallAddPhase(50),
			})

			So(report.Error, ShouldBeEmpty)
			So(report.MemoryBeforeMB, ShouldBeGreaterThan, 0)
			So(report.MemoryAfterMB, ShouldBeGreaterThan, 0)
			So(report.Snapshot, ShouldHaveLength, 50)
			So(report.Snapshot[0].Name, ShouldEqual, "task_name1")
			So(report.Snapshot[49].ID, ShouldEqual, 50)
		})

		Convey("A later phase should run against the seeded state", func() {
			seed := []subject.Record{
				{ID: 1, Name: "task_name1", Description: "task_description1"},
				{ID: 2, Name: "task_name2", Description: "task_description2"},
			}

			phase := FinishPhase()
			phase.Iterations = 2

			report := RunTrial(WorkerConfig{
				Module: "claude",
				Phase:  phase,
				Seed:   seed,
			})

			So(report.Error, ShouldBeEmpty)
			So(report.Snapshot, ShouldBeNil)
		})

		Convey("An unknown module should fail in-band", func() {
			report := RunTrial(WorkerConfig{
				Module: "bogus",
				Phase:  smallAddPhase(1),
			})

			So(report.Error, ShouldContainSubstring, "bogus")
		})

		Convey("A failing operation should fail in-band with the iteration", func() {
			phase := smallAddPhase(3)
			phase.Arguments = func(iteration int) Args {
				if iteration == 2 {
					return Args{}
				}
				return Args{
					Name:        fmt.Sprintf("task_name%d", iteration),
					Description: fmt.Sprintf("task_description%d", iteration),
				}
			}

			report := RunTrial(WorkerConfig{Module: "gemini", Phase: phase})

			So(report.Error, ShouldContainSubstring, "iteration 2")
		})

		Convey("A panicking subject should be reported, not propagated", func() {
			phase := smallAddPhase(1)
			phase.Arguments = func(int) Args {
				panic("argument rendering blew up")
			}

			So(func() {
				report := RunTrial(WorkerConfig{Module: "chatgpt", Phase: phase})
				So(report.Error, ShouldContainSubstring, "subject panicked")
				So(report.Error, ShouldContainSubstring, "argument rendering blew up")
			}, ShouldNotPanic)
		})
	})
}
