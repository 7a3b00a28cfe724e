package main

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *app) uploadReceipt(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: spendly upload-receipt FILE")
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening receipt: %w", err)
	}
	defer f.Close()

	msg, err := a.client.UploadReceipt(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) ask(ctx context.Context, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("usage: spendly ask PROMPT")
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	answer, err := a.client.Ask(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, answer)
	return nil
}
