package benchmark

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
)

func TestPhaseDescriptors(t *testing.T) {
	Convey("While rendering phase arguments", t, func() {
		Convey("The add phase should render numbered names and descriptions", func() {
			phase := AddPhase()
			So(phase.Operation, ShouldEqual, OperationAdd)
			So(phase.Iterations, ShouldEqual, DefaultIterations)
			So(phase.CaptureState, ShouldBeTrue)

			args := phase.Arguments(7)
			So(args.Name, ShouldEqual, "task_name7")
			So(args.Description, ShouldEqual, "task_description7")
		})

		Convey("The search phases should render the matching terms", func() {
			So(SearchByNamePhase().Arguments(3).Term, ShouldEqual, "task_name3")
			So(SearchByDescriptionPhase().Arguments(3).Term, ShouldEqual, "task_description3")
		})

		Convey("The finish and remove phases should use the iteration as id", func() {
			So(FinishPhase().Arguments(11).ID, ShouldEqual, 11)
			So(RemovePhase().Arguments(11).ID, ShouldEqual, 11)
		})
	})

	Convey("While listing phases", t, func() {
		Convey("They should come in execution order with add first", func() {
			var names []string
			for _, phase := range Phases() {
				names = append(names, phase.Name)
			}
			So(names, ShouldResemble, []string{
				"add", "get_all", "search_by_name",
				"search_by_description", "finish", "remove",
			})
		})

		Convey("Only the add phase should capture state", func() {
			for _, phase := range LaterPhases() {
				So(phase.CaptureState, ShouldBeFalse)
			}
		})

		Convey("Phases should be resolvable by name", func() {
			phase, err := PhaseByName("search_by_name")
			So(err, ShouldBeNil)
			So(phase.Operation, ShouldEqual, OperationSearch)

			_, err = PhaseByName("bogus")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDescriptorInvoke(t *testing.T) {
	Convey("While invoking operations on a subject", t, func() {
		sub, err := subject.New("chatgpt")
		So(err, ShouldBeNil)

		Convey("Add should create the rendered item", func() {
			So(AddPhase().Invoke(sub, 1), ShouldBeNil)

			records, err := sub.GetAll()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Name, ShouldEqual, "task_name1")
		})

		Convey("Later operations should run against seeded state", func() {
			So(AddPhase().Invoke(sub, 1), ShouldBeNil)

			So(GetAllPhase().Invoke(sub, 1), ShouldBeNil)
			So(SearchByNamePhase().Invoke(sub, 1), ShouldBeNil)
			So(SearchByDescriptionPhase().Invoke(sub, 1), ShouldBeNil)
			So(FinishPhase().Invoke(sub, 1), ShouldBeNil)
			So(RemovePhase().Invoke(sub, 1), ShouldBeNil)
		})

		Convey("An unknown operation should fail", func() {
			broken := Descriptor{
				Operation: Operation(99),
				Arguments: func(int) Args { return Args{} },
			}
			So(broken.Invoke(sub, 1), ShouldNotBeNil)
		})
	})
}
