package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"spendly/internal/models"
	"spendly/internal/session"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("login: -username is required")
	}
	if *password == "" {
		p, err := a.readLine("Password: ")
		if err != nil {
			return err
		}
		*password = p
	}

	token, err := a.client.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := a.saveToken(token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", *username)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	var reg models.Registration
	fs.StringVar(&reg.Username, "username", "", "account username")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.FirstName, "first-name", "", "first name")
	fs.StringVar(&reg.LastName, "last-name", "", "last name")
	fs.StringVar(&reg.Password1, "password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if reg.Password1 == "" {
		p, err := a.readLine("Password: ")
		if err != nil {
			return err
		}
		reg.Password1 = p
	}
	reg.Password2 = reg.Password1

	token, err := a.client.Register(ctx, reg)
	if err != nil {
		return err
	}
	if err := a.saveToken(token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and logged in as %s.\n", reg.Username)
	return nil
}

func (a *app) logout() error {
	a.client.Session().Clear()
	if a.cfg.TokenFile != "" {
		if err := session.RemoveToken(a.cfg.TokenFile); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) saveToken(token string) error {
	if a.cfg.TokenFile == "" {
		fmt.Fprintf(a.out, "Token: %s\n", token)
		return nil
	}
	return session.SaveToken(a.cfg.TokenFile, token)
}

func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
