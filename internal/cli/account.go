package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/forms"
)

func (a *App) loginCmd() *cobra.Command {
	var req api.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := forms.Check(req); err != nil {
				a.renderFieldErrors(err)
				return err
			}
			if err := a.sess.BeginLogin(); err != nil {
				return err
			}
			result, err := a.client.Login(cmd.Context(), req)
			if err != nil {
				a.sess.FailLogin()
				return err
			}
			if err := a.sess.CompleteLogin(result.Token, result.User); err != nil {
				return err
			}
			a.shop.LoadUserCart(cmd.Context())
			a.println(a.sty.Success.Render("logged in as " + result.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Server-side invalidation is best-effort; the local session
			// is destroyed regardless.
			if err := a.client.Logout(cmd.Context()); err != nil && a.log != nil {
				a.log.Warn(cmd.Context(), "server logout failed")
			}
			if err := a.sess.Logout(); err != nil {
				return err
			}
			a.println(a.sty.Muted.Render("logged out"))
			return nil
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Role != "" {
				if _, err := enums.ParseRole(req.Role); err != nil {
					return err
				}
			}
			if err := forms.Check(req); err != nil {
				a.renderFieldErrors(err)
				return err
			}
			if err := a.sess.BeginLogin(); err != nil {
				return err
			}
			result, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				a.sess.FailLogin()
				return err
			}
			if err := a.sess.CompleteLogin(result.Token, result.User); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("account created for " + result.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Role, "role", "", "account role (default customer)")
	return cmd
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !a.sess.IsAuthenticated() {
				a.println(a.sty.Muted.Render("not logged in"))
				return nil
			}
			profile := a.sess.Profile()
			if profile == nil {
				a.println(a.sty.Muted.Render("session present, profile missing"))
				return nil
			}
			a.println(a.sty.Title.Render(profile.Email))
			a.println("role: " + profile.Role.String())
			if expiry, ok := a.sess.TokenExpiry(); ok {
				a.println(a.sty.Muted.Render("token expires " + expiry.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func (a *App) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [mode]",
		Short: "Show or set the theme (light, dark, system)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				a.printf("mode: %s, resolved: %s\n", a.theme.Mode(), a.theme.Resolved())
				return nil
			}
			mode, err := enums.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := a.theme.SetMode(mode); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("theme set to " + mode.String()))
			return nil
		},
	}
	return cmd
}

func (a *App) blogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blog [id]",
		Short: "Read the blog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				posts, err := a.client.ListBlogPosts(cmd.Context())
				if err != nil {
					return err
				}
				for _, post := range posts {
					a.printf("%-6d %s\n", post.ID, a.sty.Header.Render(post.Title))
					if post.Excerpt != "" {
						a.println(a.sty.Muted.Render("       " + truncate(post.Excerpt, 70)))
					}
				}
				return nil
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			post, err := a.client.GetBlogPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.println(a.sty.Title.Render(post.Title))
			if post.Author != "" {
				a.println(a.sty.Muted.Render("by " + post.Author))
			}
			a.println(post.Body)
			return nil
		},
	}
}

func (a *App) contactCmd() *cobra.Command {
	var req api.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the pharmacy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := forms.Check(req); err != nil {
				a.renderFieldErrors(err)
				return err
			}
			if err := a.client.SubmitContact(cmd.Context(), req); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("message sent"))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&req.Message, "message", "", "message body")
	return cmd
}

func (a *App) settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show site contact details and payment wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := a.client.SiteSettings(cmd.Context())
			if err != nil {
				return err
			}
			if settings.ContactEmail != "" {
				a.println("email: " + settings.ContactEmail)
			}
			if settings.ContactPhone != "" {
				a.println("phone: " + settings.ContactPhone)
			}
			if settings.Address != "" {
				a.println("address: " + settings.Address)
			}
			for _, wallet := range settings.CryptoWallets {
				a.printf("%s wallet: %s\n", wallet.Currency, wallet.Address)
			}
			return nil
		},
	}
}
