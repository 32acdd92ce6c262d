// Package main is the entry point for the interviewd application.
package main

import (
	"os"

	"github.com/Utkarsh-shift/ai-interview-backend/cmd/interviewd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
