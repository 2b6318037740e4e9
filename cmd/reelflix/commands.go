// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/taibuivan/reelflix/internal/client"
	"github.com/taibuivan/reelflix/internal/content"
)

// errReported marks failures already shown to the user as notifications.
var errReported = errors.New("failure reported")

// # Command Definitions

func signupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "username", Usage: "Display name", Required: true},
		},
		Action: r.Signup,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to an existing account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "End the current session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in user",
		Action: r.Whoami,
	}
}

func homeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "home",
		Usage:  "Show a trending pick and every category row",
		Action: r.Home,
	}
}

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "List one category, e.g. popular or top_rated",
		Arguments: []cli.Argument{&cli.StringArg{Name: "category"}},
		Action:    r.Browse,
	}
}

func detailsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "details",
		Usage:     "Show one title with its trailers",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Details,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies, TV shows or people",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "searchType"},
			&cli.StringArg{Name: "query"},
		},
		Action: r.Search,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List recent searches",
		Action: r.History,
	}
}

func historyRemoveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "history-rm",
		Usage:     "Forget one recent search",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.HistoryRemove,
	}
}

// # Auth Actions

// Signup creates an account and stores its session.
func (r *Runner) Signup(ctx context.Context, cmd *cli.Command) error {
	password, err := r.promptPassword()
	if err != nil {
		return err
	}

	err = r.auth.Signup(ctx, client.SignupRequest{
		Email:    cmd.String("email"),
		Username: cmd.String("username"),
		Password: password,
	})
	if err != nil {
		return errReported
	}

	r.writePlain("Welcome, %s\n", r.auth.State().User.Username)
	return r.saveSession()
}

// Login signs in and stores the session.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	password, err := r.promptPassword()
	if err != nil {
		return err
	}

	err = r.auth.Login(ctx, client.LoginRequest{Email: cmd.String("email"), Password: password})
	if err != nil {
		return errReported
	}

	r.writePlain("Welcome back, %s\n", r.auth.State().User.Username)
	return r.saveSession()
}

// Logout ends the session. The saved session is kept if the server refused.
func (r *Runner) Logout(ctx context.Context, _ *cli.Command) error {
	if err := r.auth.Logout(ctx); err != nil {
		return errReported
	}
	return r.saveSession()
}

// Whoami resolves the saved session.
func (r *Runner) Whoami(ctx context.Context, _ *cli.Command) error {
	if err := r.auth.AuthCheck(ctx); err != nil {
		var connectionErr *client.ConnectionError
		if errors.As(err, &connectionErr) {
			r.notify(client.Notification{Level: client.LevelError, Message: client.MsgConnectionError})
			return errReported
		}
		r.logger.Debug("auth check failed", "err", err)
	}

	user := r.auth.State().User
	if user == nil {
		r.writePlain("Not signed in\n")
		return nil
	}

	r.writePlain("%s <%s>\n", styles.title.Render(user.Username), user.Email)
	r.writePlain("Member since %s\n", user.CreatedAt.Format("January 2006"))
	return nil
}

// # Browse Actions

// Home renders the trending hero and all category rows of the selected type.
func (r *Runner) Home(ctx context.Context, _ *cli.Command) error {
	contentType := r.types.ContentType()

	hero := client.NewTrendingFeed(r.api, r.types, r.notify).Load(ctx)
	if hero.Content != nil {
		renderHero(r.output, hero.Content)
	}

	failed := hero.Err != nil
	for _, category := range content.Categories[contentType] {
		row := client.NewRowFeed(r.api, r.types, category, r.notify)
		state := row.Load(ctx)
		if state.Err != nil {
			failed = true
			continue
		}
		renderRow(r.output, row.Title(), state.Content)
	}

	if failed {
		return errReported
	}
	return nil
}

// Browse renders one category row.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	category := cmd.StringArg("category")
	if !content.IsCategory(r.types.ContentType(), category) {
		return fmt.Errorf("unknown category %q for %s", category, client.TypeLabel(r.types.ContentType()))
	}

	row := client.NewRowFeed(r.api, r.types, category, r.notify)
	state := row.Load(ctx)
	if state.Err != nil {
		return errReported
	}

	renderRow(r.output, row.Title(), state.Content)
	return nil
}

// Details renders one title and its trailers.
func (r *Runner) Details(ctx context.Context, cmd *cli.Command) error {
	id, err := strconv.Atoi(cmd.StringArg("id"))
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", cmd.StringArg("id"))
	}
	contentType := r.types.ContentType()

	details, err := r.api.Details(ctx, contentType, id)
	if err != nil {
		return r.fail(err, "Failed to load details")
	}

	trailers, err := r.api.Trailers(ctx, contentType, id)
	if err != nil {
		r.logger.Warn("trailers unavailable", "err", err)
	}

	renderDetails(r.output, details, trailers)
	return nil
}

// # Search Actions

// Search runs a query and renders the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	searchType := content.SearchType(cmd.StringArg("searchType"))
	query := cmd.StringArg("query")

	results, err := r.api.Search(ctx, searchType, query)
	if err != nil {
		return r.fail(err, "Search failed")
	}

	renderRow(r.output, fmt.Sprintf("Results for %q", query), results)
	return nil
}

// History lists recent searches.
func (r *Runner) History(ctx context.Context, _ *cli.Command) error {
	entries, err := r.api.History(ctx)
	if err != nil {
		return r.fail(err, "Failed to load search history")
	}

	renderHistory(r.output, entries)
	return nil
}

// HistoryRemove forgets one search.
func (r *Runner) HistoryRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.api.RemoveHistory(ctx, cmd.StringArg("id")); err != nil {
		return r.fail(err, "Failed to remove search")
	}

	r.notify(client.Notification{Level: client.LevelSuccess, Message: "Removed from search history"})
	return nil
}

// fail reports an API error the way the stores do and exits non-zero.
func (r *Runner) fail(err error, fallback string) error {
	message := fallback

	var responseErr *client.ResponseError
	var connectionErr *client.ConnectionError
	switch {
	case errors.As(err, &responseErr) && responseErr.Reason() != "":
		message = responseErr.Reason()
	case errors.As(err, &connectionErr):
		message = client.MsgConnectionError
	}

	r.notify(client.Notification{Level: client.LevelError, Message: message})
	return errReported
}
