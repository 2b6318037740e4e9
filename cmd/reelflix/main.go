// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command reelflix is the terminal front end of the Reelflix API.
package main

import (
	"context"
	"errors"
	"os"
)

func main() {
	logger := NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.App().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		logger.Fatal("application error", "err", err)
	}
}
