package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/benchmark"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/conf"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/subject"
	"github.com/stehlfi1/serial-experiment-temperature-sub006/pkg/utils/errutil"
)

const appHelp = `membench measures the per-operation memory usage of the corpus todo-list
implementations. Every trial runs in its own OS process so one trial's
allocator state cannot bias the next.`

// dumpConfigFlag name includes a dash to exclude it from dumping.
var dumpConfigFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)

func main() {
	conf.SetAppName("membench")
	conf.SetHelp(appHelp)

	runCmd := conf.Command("run", "Benchmark the given subject module.").Default()
	runModule := runCmd.Arg("module", "Subject module name (chatgpt, claude, gemini).").Required().String()

	moduleCmd := conf.Command("module", "Internal: run all phases of one module inside the isolating process.").Hidden()
	moduleName := moduleCmd.Flag("name", "Subject module name.").Required().String()

	workerCmd := conf.Command("worker", "Internal: run one trial inside an isolated worker process.").Hidden()
	workerModule := workerCmd.Flag("module", "Subject module name.").Required().String()
	workerOperation := workerCmd.Flag("operation", "Phase name.").Required().String()
	workerTrial := workerCmd.Flag("trial", "0-based trial index, used for logging only.").Default("0").Int()
	workerSeedFile := workerCmd.Flag("seed_file", "Path to the captured state file.").String()

	command, err := conf.ParseArgs()
	errutil.CheckWithContext(err, "could not parse command line")

	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}

	switch command {
	case "run":
		runBenchmark(*runModule)
	case "module":
		runModulePhases(*moduleName)
	case "worker":
		runWorker(*workerModule, *workerOperation, *workerTrial, *workerSeedFile)
	}
}

// runBenchmark is the user-facing entry point: validate the module name, then
// hand the whole benchmark to the isolating module process.
func runBenchmark(module string) {
	// An unrecognized name is a fatal input error before any benchmarking starts.
	_, err := subject.New(module)
	errutil.Check(err)

	benchmark.NewModuleLauncher(module, os.Stdout).Launch()
}

// runModulePhases executes inside the isolating module process.
func runModulePhases(module string) {
	if err := benchmark.NewRunner(module, os.Stdout).Run(); err != nil {
		logrus.Errorf("%+v", err)
		os.Exit(1)
	}
}

// runWorker executes inside a per-trial worker process. Every failure travels
// in-band in the report; the worker only exits non-zero when it cannot even
// write the report.
func runWorker(module string, operation string, trial int, seedFile string) {
	report := buildWorkerReport(module, operation, trial, seedFile)

	err := report.Write(os.Stdout)
	errutil.CheckWithContext(err, "could not write trial report")
}

func buildWorkerReport(module string, operation string, trial int, seedFile string) benchmark.Report {
	phase, err := benchmark.PhaseByName(operation)
	if err != nil {
		return benchmark.Report{Error: err.Error()}
	}

	var seed []subject.Record
	if seedFile != "" {
		seed, err = benchmark.ReadSeedFile(seedFile)
		if err != nil {
			return benchmark.Report{Error: err.Error()}
		}
	}

	return benchmark.RunTrial(benchmark.WorkerConfig{
		Module: module,
		Phase:  phase,
		Trial:  trial,
		Seed:   seed,
	})
}
