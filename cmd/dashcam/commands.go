package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dashcam/internal/delivery/tui"
	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/infra/auth/oauth"
	"dashcam/internal/infra/notification"
	"dashcam/internal/usecase"
	"dashcam/internal/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/schollz/progressbar/v3"
)

type action func(ctx context.Context, a *app, args []string) error

type command struct {
	name    string
	usage   string
	summary string
	// resumeLinks retries a persisted deep link before the action runs
	resumeLinks bool
	setup       func(fs *flag.FlagSet) action
}

var commands = []command{
	{name: "login", usage: "[-token <provider-access-token>] [-provider <name>]", summary: "Sign in with the configured OAuth provider", setup: setupLogin},
	{name: "link", usage: "<redirect-url>", summary: "Complete a sign-in from a redirect link", setup: setupLink},
	{name: "resume", summary: "Retry a sign-in link that failed earlier", setup: setupResume},
	{name: "logout", summary: "Remove stored credentials", setup: setupLogout},
	{name: "withdraw", usage: "-yes", summary: "Delete the account and all local state", setup: setupWithdraw},
	{name: "whoami", summary: "Show the signed-in account", resumeLinks: true, setup: setupWhoami},
	{name: "status", summary: "Show the stored session without contacting the backend", setup: setupStatus},
	{name: "reports", usage: "[-limit N]", summary: "List analysis reports", resumeLinks: true, setup: setupReports},
	{name: "report", usage: "<id>", summary: "Show one analysis report", resumeLinks: true, setup: setupReport},
	{name: "upload", usage: "[-content-type type] [-tui] <file>", summary: "Upload a recording for analysis", resumeLinks: true, setup: setupUpload},
	{name: "browse", summary: "Browse reports interactively", resumeLinks: true, setup: setupBrowse},
	{name: "register-device", usage: "<fcm-token>", summary: "Register a push token for report notifications", resumeLinks: true, setup: setupRegisterDevice},
	{name: "inbox", usage: "[-ack <report-id>]", summary: "List or acknowledge newly delivered reports", setup: setupInbox},
	{name: "prefs", usage: "[-auto-detect on|off] [-notifications on|off]", summary: "Show or change local preferences", setup: setupPrefs},
	{name: "push-test", usage: "-report <id> [-token <fcm-token>]", summary: "Send or simulate a report-ready push", setup: setupPushTest},
	{name: "auth-url", usage: "[-qr file.png]", summary: "Print the provider consent URL", setup: setupAuthURL},
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}

	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dashcam <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Use 'dashcam <command> -h' for more information about a command.")
}

func setupLogin(fs *flag.FlagSet) action {
	token := fs.String("token", "", "Provider access token obtained elsewhere; skips the browser sign-in")
	provider := fs.String("provider", "", "Provider the -token belongs to (defaults to oauth.provider)")

	return func(ctx context.Context, a *app, _ []string) error {
		var (
			session *entity.Session
			err     error
		)

		if *token != "" {
			p := a.Platform.Authenticator().Provider()
			if *provider != "" {
				parsed, ok := entity.ParseProviderType(*provider)
				if !ok {
					return errors.Errorf("invalid provider %q", *provider)
				}
				p = parsed
			}
			session, err = a.Auth.ExchangeProviderToken(ctx, p, *token)
		} else {
			if *provider != "" && !strings.EqualFold(*provider, a.Platform.Authenticator().Provider().String()) {
				return errors.Errorf("provider %q is not configured; set oauth.provider or pass -token", *provider)
			}
			session, err = a.Auth.LoginWithProvider(ctx)
		}
		if err != nil {
			return errors.Wrap(err, "login")
		}

		fmt.Fprintf(a.Out, "Signed in with %s\n", session.Provider)

		return nil
	}
}

func setupLink(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 {
			return errors.New("link needs exactly one redirect URL")
		}

		session, err := a.DeepLinks.Handle(ctx, args[0])
		if err != nil {
			if a.DeepLinks.State() == usecase.DeepLinkPendingResume {
				fmt.Fprintln(a.Out, "Sign-in saved; run 'dashcam resume' to retry.")
			}

			return errors.Wrap(err, "link")
		}

		fmt.Fprintf(a.Out, "Signed in with %s\n", session.Provider)

		return nil
	}
}

func setupResume(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, _ []string) error {
		session, err := a.DeepLinks.Resume(ctx)
		if err != nil {
			return errors.Wrap(err, "resume")
		}
		if session == nil {
			fmt.Fprintln(a.Out, "Nothing to resume.")

			return nil
		}

		fmt.Fprintf(a.Out, "Signed in with %s\n", session.Provider)

		return nil
	}
}

func setupLogout(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, _ []string) error {
		if err := a.Auth.Logout(ctx); err != nil {
			return errors.Wrap(err, "logout")
		}

		fmt.Fprintln(a.Out, "Signed out.")

		return nil
	}
}

func setupWithdraw(fs *flag.FlagSet) action {
	yes := fs.Bool("yes", false, "Confirm permanent account deletion")

	return func(ctx context.Context, a *app, _ []string) error {
		if !*yes {
			return errors.New("withdraw deletes your account and reports; pass -yes to confirm")
		}
		if err := a.Auth.Withdraw(ctx); err != nil {
			return errors.Wrap(err, "withdraw")
		}

		fmt.Fprintln(a.Out, "Account deleted.")

		return nil
	}
}

func setupWhoami(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, _ []string) error {
		user, err := a.Auth.CurrentUser(ctx)
		if err != nil {
			return describe(err, "whoami")
		}

		fmt.Fprintf(a.Out, "%s <%s>\n", user.Name, user.Email)
		if !user.CreatedAt.IsZero() {
			fmt.Fprintf(a.Out, "Member since %s\n", user.CreatedAt.Format("2006-01-02"))
		}

		return nil
	}
}

func setupStatus(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, _ []string) error {
		info, err := a.Auth.SessionStatus(ctx)
		if err != nil {
			return errors.Wrap(err, "status")
		}

		writeSessionInfo(a.Out, a.Platform.Name(), info, time.Now())

		return nil
	}
}

func writeSessionInfo(w io.Writer, platformName string, info *entity.SessionInfo, now time.Time) {
	fmt.Fprintf(w, "Platform:  %s\n", platformName)
	if !info.SignedIn {
		fmt.Fprintln(w, "Session:   signed out")

		return
	}

	fmt.Fprintln(w, "Session:   signed in")
	if info.Provider != "" {
		fmt.Fprintf(w, "Provider:  %s\n", info.Provider)
	}
	if info.Opaque {
		fmt.Fprintln(w, "Token:     opaque")

		return
	}
	if info.Subject != "" {
		fmt.Fprintf(w, "Subject:   %s\n", info.Subject)
	}
	if info.ExpiresAt != nil {
		if info.Expired {
			fmt.Fprintf(w, "Expired:   %s (%s ago)\n", info.ExpiresAt.Format(time.RFC3339), util.FormatDuration(now.Sub(*info.ExpiresAt)))
		} else {
			fmt.Fprintf(w, "Expires:   %s (in %s)\n", info.ExpiresAt.Format(time.RFC3339), util.FormatDuration(info.ExpiresAt.Sub(now)))
		}
	}
}

func setupReports(fs *flag.FlagSet) action {
	limit := fs.Int("limit", 0, "Maximum number of reports (defaults to reports.defaultLimit)")

	return func(ctx context.Context, a *app, _ []string) error {
		reports, err := a.Reports.ListReports(ctx, *limit)
		if err != nil {
			return describe(err, "reports")
		}
		if len(reports) == 0 {
			fmt.Fprintln(a.Out, "No reports yet.")

			return nil
		}

		unread, err := a.Devices.NewReports(ctx)
		if err != nil {
			a.Logger.Warn("Reading new report ids failed", slog.Any("error", err))
		}

		fmt.Fprintln(a.Out, reportTable(reports, unread, time.Now()))

		return nil
	}
}

func reportTable(reports []entity.ReportSummary, unread []string, now time.Time) string {
	marks := make(map[string]bool, len(unread))
	for _, id := range unread {
		marks[id] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "WHEN", "TYPE", "FAULT", "TITLE")
	for _, r := range reports {
		mark := ""
		if marks[string(r.ID)] {
			mark = "*"
		}
		fault := "-"
		if r.FaultRatio != nil {
			fault = r.FaultRatio.String()
		}
		t.Row(mark, string(r.ID), util.FormatAge(r.CreatedAt.Time, now), r.AccidentType, fault, r.Title)
	}

	return t.String()
}

func setupReport(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 {
			return errors.New("report needs exactly one report id")
		}

		id := entity.ReportID(args[0])
		report, err := a.Reports.GetReport(ctx, id)
		if err != nil {
			return describe(err, "report")
		}

		fmt.Fprintln(a.Out, report.Title)
		fmt.Fprintln(a.Out, tui.RenderReport(report, 100))

		if err := a.Devices.AcknowledgeReport(ctx, id); err != nil {
			a.Logger.Warn("Acknowledging report failed", slog.String("report_id", args[0]), slog.Any("error", err))
		}

		return nil
	}
}

func setupUpload(fs *flag.FlagSet) action {
	contentType := fs.String("content-type", "", "Override the detected content type")
	interactive := fs.Bool("tui", false, "Show an interactive progress view")

	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 {
			return errors.New("upload needs exactly one file")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "open recording")
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return errors.Wrap(err, "stat recording")
		}

		file := entity.UploadFile{
			Name:        filepath.Base(args[0]),
			ContentType: *contentType,
			Size:        stat.Size(),
			Body:        f,
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream := a.Uploads.Upload(ctx, file)
		started := time.Now()

		var receipt *entity.UploadReceipt
		if *interactive {
			receipt, err = uploadWithTUI(ctx, file, stream, cancel)
		} else {
			receipt, err = uploadWithBar(file, stream)
		}
		if err != nil {
			return describe(err, "upload")
		}

		fmt.Fprintf(a.Out, "Uploaded %s (%s in %s, %s)\n", file.Name, util.FormatBytes(file.Size),
			util.FormatDuration(time.Since(started)), util.FormatRate(file.Size, time.Since(started)))
		if receipt != nil && receipt.ID != "" {
			fmt.Fprintf(a.Out, "Video id: %s\n", receipt.ID)
		}
		if receipt != nil && receipt.AnalysisStatus != "" {
			fmt.Fprintf(a.Out, "Analysis: %s\n", strings.ToLower(receipt.AnalysisStatus))
		}

		return nil
	}
}

func uploadWithBar(file entity.UploadFile, stream *usecase.UploadStream) (*entity.UploadReceipt, error) {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(file.Name),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for ev := range stream.Events() {
		switch e := ev.(type) {
		case usecase.UploadProgress:
			_ = bar.Set(e.Percent)
		case usecase.UploadCompleted:
			_ = bar.Finish()

			return e.Receipt, nil
		case usecase.UploadFailed:
			_ = bar.Exit()

			return nil, errors.Wrapf(e.Err, "%s failed", e.Stage)
		}
	}

	return nil, errors.New("upload ended without a result")
}

func uploadWithTUI(ctx context.Context, file entity.UploadFile, stream *usecase.UploadStream, cancel context.CancelFunc) (*entity.UploadReceipt, error) {
	model := tui.NewUpload(file.Name, file.Size, stream, cancel)
	_, runErr := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	model.Close()
	if runErr != nil && model.Receipt() == nil {
		return nil, errors.Wrap(runErr, "progress view")
	}
	if err := model.Err(); err != nil {
		return nil, err
	}

	return model.Receipt(), nil
}

func setupBrowse(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, _ []string) error {
		unread, err := a.Devices.NewReports(ctx)
		if err != nil {
			a.Logger.Warn("Reading new report ids failed", slog.Any("error", err))
		}

		onOpen := func(id entity.ReportID) {
			if err := a.Devices.AcknowledgeReport(ctx, id); err != nil {
				a.Logger.Warn("Acknowledging report failed", slog.String("report_id", string(id)), slog.Any("error", err))
			}
		}

		browser := tui.NewBrowser(ctx, a.Reports, a.Config.Reports.DefaultLimit, unread, onOpen)
		if _, err := tea.NewProgram(browser, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return errors.Wrap(err, "browse")
		}

		return nil
	}
}

func setupRegisterDevice(*flag.FlagSet) action {
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 {
			return errors.New("register-device needs exactly one push token")
		}
		if err := a.Devices.RegisterPushToken(ctx, args[0]); err != nil {
			return describe(err, "register device")
		}

		fmt.Fprintln(a.Out, "Device registered for report notifications.")

		return nil
	}
}

func setupInbox(fs *flag.FlagSet) action {
	ack := fs.String("ack", "", "Report id to mark as seen")

	return func(ctx context.Context, a *app, _ []string) error {
		if *ack != "" {
			if err := a.Devices.AcknowledgeReport(ctx, entity.ReportID(*ack)); err != nil {
				return errors.Wrap(err, "acknowledge report")
			}
		}

		ids, err := a.Devices.NewReports(ctx)
		if err != nil {
			return errors.Wrap(err, "inbox")
		}
		if len(ids) == 0 {
			fmt.Fprintln(a.Out, "No new reports.")

			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(a.Out, id)
		}

		return nil
	}
}

func setupPrefs(fs *flag.FlagSet) action {
	autoDetect := fs.String("auto-detect", "", "Turn accident auto-detection on or off")
	notifications := fs.String("notifications", "", "Turn report notifications on or off")

	return func(ctx context.Context, a *app, _ []string) error {
		if *autoDetect != "" {
			enabled, err := parseToggle(*autoDetect)
			if err != nil {
				return errors.Wrap(err, "-auto-detect")
			}
			if err := a.Devices.SetAutoDetect(ctx, enabled); err != nil {
				return errors.Wrap(err, "set auto-detect")
			}
		}
		if *notifications != "" {
			enabled, err := parseToggle(*notifications)
			if err != nil {
				return errors.Wrap(err, "-notifications")
			}
			if err := a.Devices.SetNotifications(ctx, enabled); err != nil {
				return errors.Wrap(err, "set notifications")
			}
		}

		prefs, err := a.Devices.Preferences(ctx)
		if err != nil {
			return errors.Wrap(err, "read preferences")
		}

		fmt.Fprintf(a.Out, "auto-detect:   %s\n", formatToggle(prefs.AutoDetect))
		fmt.Fprintf(a.Out, "notifications: %s\n", formatToggle(prefs.Notifications))

		return nil
	}
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}

	return false, errors.Errorf("expected on or off, got %q", s)
}

func formatToggle(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}

func setupPushTest(fs *flag.FlagSet) action {
	reportID := fs.String("report", "", "Report id carried in the push data")
	token := fs.String("token", "", "FCM device token; without it the push is delivered locally")
	title := fs.String("title", "Analysis ready", "Notification title")
	body := fs.String("body", "Your accident report is ready to view.", "Notification body")

	return func(ctx context.Context, a *app, _ []string) error {
		if *reportID == "" {
			return errors.New("-report is required")
		}
		data := map[string]string{usecase.PushDataReportID: *reportID}

		if *token == "" {
			recorded, err := a.Devices.HandlePush(ctx, data)
			if err != nil {
				return errors.Wrap(err, "deliver push")
			}
			if !recorded {
				fmt.Fprintln(a.Out, "Push ignored (notifications off or already in inbox).")

				return nil
			}
			fmt.Fprintf(a.Out, "Report %s added to inbox.\n", *reportID)

			return nil
		}

		sender, err := notification.NewFirebaseService(ctx, a.Config.Firebase)
		if err != nil {
			return errors.Wrap(err, "push-test")
		}

		return sendTestPush(ctx, a.Out, sender, *token, *title, *body, data)
	}
}

func sendTestPush(ctx context.Context, w io.Writer, sender service.NotificationService, token, title, body string, data map[string]string) error {
	messageID, err := sender.SendSingleNotification(ctx, token, title, body, data)
	if err != nil {
		return errors.Wrap(err, "push-test")
	}

	fmt.Fprintf(w, "Sent %s\n", messageID)

	return nil
}

func setupAuthURL(fs *flag.FlagSet) action {
	qrFile := fs.String("qr", "", "Write the consent URL as a PNG QR code to this file")

	return func(_ context.Context, a *app, _ []string) error {
		state, err := oauth.GenerateState()
		if err != nil {
			return errors.Wrap(err, "auth-url")
		}

		authURL := a.Platform.Authenticator().AuthorizationURL(state)
		fmt.Fprintln(a.Out, authURL)

		if *qrFile == "" {
			art, err := a.QRCode.RenderTerminal(authURL)
			if err != nil {
				return errors.Wrap(err, "render qr code")
			}
			fmt.Fprint(a.Out, art)

			return nil
		}

		png, err := a.QRCode.GeneratePNG(authURL)
		if err != nil {
			return errors.Wrap(err, "generate qr code")
		}
		if err := os.WriteFile(*qrFile, png, 0o644); err != nil {
			return errors.Wrap(err, "write qr code")
		}

		fmt.Fprintf(a.Out, "QR code written to %s\n", *qrFile)

		return nil
	}
}

// describe turns client failures into something a person can act on
func describe(err error, op string) error {
	if domainerrors.IsUnauthorized(err) {
		return errors.Wrapf(err, "%s: not signed in, run 'dashcam login'", op)
	}

	var clientErr *domainerrors.ClientError
	if errors.As(err, &clientErr) {
		return errors.Errorf("%s: %s (%v)", op, clientErr.Message(), err)
	}

	return errors.Wrap(err, op)
}
