package executor

import (
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// TestLocal tests the execution of a process on the local machine.
func TestLocal(t *testing.T) {
	Convey("While using Local executor", t, func() {
		l := NewLocal(t.TempDir())

		Convey("When command `echo output` is executed", func() {
			task, err := l.Execute("echo output")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()

			Convey("When we wait for the task to terminate", func() {
				terminated := task.Wait(5 * time.Second)

				Convey("Wait should return true and the task should be terminated", func() {
					So(terminated, ShouldBeTrue)
					So(task.Status(), ShouldEqual, TERMINATED)
				})

				Convey("The exit code should be 0", func() {
					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)
				})

				Convey("And the stdout file should contain the printed output", func() {
					file, err := task.StdoutFile()
					So(err, ShouldBeNil)

					data, err := io.ReadAll(file)
					So(err, ShouldBeNil)
					So(strings.TrimSpace(string(data)), ShouldEqual, "output")
				})
			})
		})

		Convey("When command which exits with code 1 is executed", func() {
			task, err := l.Execute("exit 1")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()

			Convey("The task should terminate with exit code 1", func() {
				terminated := task.Wait(5 * time.Second)
				So(terminated, ShouldBeTrue)

				exitCode, err := task.ExitCode()
				So(err, ShouldBeNil)
				So(exitCode, ShouldEqual, 1)
			})
		})

		Convey("When blocking sleep command is executed", func() {
			task, err := l.Execute("sleep 60")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()

			Convey("Task should be still running and exit code unavailable", func() {
				So(task.Status(), ShouldEqual, RUNNING)

				_, err := task.ExitCode()
				So(err, ShouldNotBeNil)

				stopErr := task.Stop()
				So(stopErr, ShouldBeNil)
			})

			Convey("When we wait for the task with a short timeout", func() {
				terminated := task.Wait(10 * time.Millisecond)

				Convey("The timeout should exceed and the task should not be terminated", func() {
					So(terminated, ShouldBeFalse)
					So(task.Status(), ShouldEqual, RUNNING)
				})

				stopErr := task.Stop()
				So(stopErr, ShouldBeNil)
			})

			Convey("When we stop the task", func() {
				err := task.Stop()

				Convey("There should be no error and the task should be terminated by a signal", func() {
					So(err, ShouldBeNil)
					So(task.Status(), ShouldEqual, TERMINATED)

					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldBeLessThan, 0)
				})
			})
		})

		Convey("When command which does not exist is executed", func() {
			task, err := l.Execute("/does/not/exist")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()

			Convey("The task should terminate with a non-zero exit code", func() {
				terminated := task.Wait(5 * time.Second)
				So(terminated, ShouldBeTrue)

				exitCode, err := task.ExitCode()
				So(err, ShouldBeNil)
				So(exitCode, ShouldNotEqual, 0)
			})
		})
	})
}
