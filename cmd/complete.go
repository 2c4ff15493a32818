package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of the flags that take a known set of values.
var predictors = map[string]complete.Predictor{
	"config":       predict.Files("*.yaml"),
	"data-file":    predict.Or(predict.Files("*.xlsx"), predict.Files("*.xls"), predict.Files("*.csv")),
	"savings-file": predict.Or(predict.Files("*.xlsx"), predict.Files("*.xls"), predict.Files("*.csv")),
	"o":            predict.Files("*"),
	"period":       predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
	"format":       predict.Set{"csv", "xlsx"},
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the commands and of the global
// flags of root.
func Completion(root *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(root),
	}
	for _, r := range commands {
		fs := flag.NewFlagSet(r.cmd.Name(), flag.ContinueOnError)
		r.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if r.cmd.Name() == "topic" {
			sub.Args = predict.Set(topicNames())
		}
		c.Sub[r.cmd.Name()] = sub
	}
	return c
}
