package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/NF-coder/tap-modified/cmd"
	"github.com/NF-coder/tap-modified/lib/demo"
)

func main() {
	cmd.LoadDotenv(logrus.StandardLogger())

	ctx := context.Background()

	os.Exit(cmd.Execute(ctx, cmd.New(demo.Callables()...)))
}
