// Command dbn-mnist pre-trains a stack of restricted Boltzmann
// machines on the MNIST digits, transfers the stack into a
// feed-forward classifier and fine-tunes it with labeled data.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-ml.dev/pkg/dbn"
	"go-ml.dev/pkg/dbn/datasets/mnist"
	"go-ml.dev/pkg/dbn/fu"
	"go-ml.dev/pkg/dbn/mlp"
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/iokit"
)

var (
	datadir   = flag.String("datadir", "/tmp/mnist", "directory with the gzipped IDX files")
	hidden    = flag.String("hidden", "500,100", "comma separated hidden layer widths")
	pretrain  = flag.Int("pretrain", 5, "pre-training epochs per layer")
	epochs    = flag.Int("epochs", 20, "fine-tuning epochs")
	seed      = flag.Uint64("seed", 42, "random seed for sampling and shuffling")
	modelfile = flag.String("model", "", "file to store the trained classifier, relative names go to the model cache")
	historydb = flag.String("history", "", "sqlite file to record epoch metrics")
	quiet     = flag.Bool("quiet", false, "suppress epoch progress lines")
)

func fatal(f string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func widths(s string) (r []int) {
	for _, x := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil || v <= 0 {
			fatal("bad hidden layer width `%v`", x)
		}
		r = append(r, v)
	}
	return
}

// seedAll reseeds every machine of the stack and the classifier
func seedAll(s *dbn.Stack, n *mlp.Network, seed uint64) {
	for _, m := range s.Machines {
		m.Seed = seed
	}
	if n != nil {
		n.Seed = seed
	}
}

// modelOutput resolves the model flag through the model cache
func modelOutput(path string) iokit.Output {
	if path == "" {
		return nil
	}
	return iokit.File(fu.ModelPath(path))
}

func main() {
	flag.Parse()
	var verbose interface{}
	if !*quiet {
		verbose = func(s string) { fmt.Fprintln(os.Stderr, s) }
	}

	train, _, err := mnist.Load(*datadir)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "loaded %v train / %v test samples of width %v\n",
		train.Len(), train.Validation.Len(), train.Width())

	stack := dbn.NewStack(train.Width(), widths(*hidden)...)
	seedAll(stack, nil, *seed)
	if _, err = stack.Pretrain(train, model.Training{
		Iterations: *pretrain,
		Score:      model.LossScore,
		Verbose:    verbose,
	}); err != nil {
		fatal("pre-training failed: %v", err)
	}

	clf, err := stack.Classifier(train)
	if err != nil {
		fatal("parameter transfer failed: %v", err)
	}
	seedAll(stack, clf, *seed)

	tuning := model.Training{
		Iterations: *epochs,
		Score:      model.AccuracyScore,
		ModelFile:  modelOutput(*modelfile),
		Verbose:    verbose,
	}
	if *historydb != "" {
		h, err := model.OpenHistory(*historydb, "dbn-mnist")
		if err != nil {
			fatal("%v", err)
		}
		defer h.Close()
		tuning.History = h
	}

	report, err := clf.Feed(train).Train(tuning)
	if err != nil {
		fatal("fine-tuning failed: %v", err)
	}
	fmt.Printf("the best test accuracy %.4f reached at epoch %v\n",
		report.Test.Accuracy, report.TheBest)
}
