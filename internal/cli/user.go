package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lifeforge/lifeforge/internal/daemon"
	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
	"github.com/lifeforge/lifeforge/internal/security"
)

func init() {
	userCreateCmd.Flags().StringVar(&userCreateName, "name", "", "Display name (defaults to username)")
	userCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "Password (prompted if omitted)")
	userPasswdCmd.Flags().StringVar(&userPasswdNew, "password", "", "New password (prompted if omitted)")
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userPasswdCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	userCreateName     string
	userCreatePassword string
	userPasswdNew      string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage LifeForge users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create a user with default habits and money categories",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	RunE:  runUserList,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd USERNAME",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password := userCreatePassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			password = strings.TrimSpace(scanner.Text())
		}
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	name := userCreateName
	if name == "" {
		name = username
	}

	user := domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := db.CreateUser(user, hash); err != nil {
		return err
	}
	if err := db.SeedUserDefaults(user.ID, domain.DefaultHabits(), domain.DefaultMoneyCategories()); err != nil {
		return err
	}

	fmt.Printf("Created user %q (%s)\n", username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := db.ListUsers("")
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users yet. Run: lifeforge user create USERNAME")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%-20s %s  (created %s)\n", u.Username, u.Name, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, _, err := db.GetUserByUsername(args[0])
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no such user %q", args[0])
	}

	password := userPasswdNew
	if password == "" {
		fmt.Fprint(os.Stderr, "New password: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			password = strings.TrimSpace(scanner.Text())
		}
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	if err := db.UpdatePassword(user.ID, hash); err != nil {
		return err
	}

	fmt.Printf("Password updated for %q\n", args[0])
	return nil
}

// openDB opens the configured database without starting the daemon.
func openDB() (*sqlite.DB, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}
	return sqlite.Open(cfg.Database.Dir)
}
