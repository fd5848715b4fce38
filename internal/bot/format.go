package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/glebk/userlist-bot/internal/domain"
)

// Telegram rejects messages longer than 4096 characters
const maxMessageLen = 4000

// parseUserArgs parses "First Last | email | age"
func parseUserArgs(args string) (domain.User, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 3 {
		return domain.User{}, fmt.Errorf("expected \"First Last | email | age\"")
	}

	first, last, err := domain.SplitFullName(parts[0])
	if err != nil {
		return domain.User{}, err
	}

	age, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.User{}, &domain.ValidationError{Fields: []string{"Age"}}
	}

	user := domain.User{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(parts[1]),
		Age:       age,
	}
	return user, domain.Validate(user)
}

// parseEditArgs parses "<id> First Last | email | age"
func parseEditArgs(args string) (int64, domain.User, error) {
	args = strings.TrimSpace(args)
	idText, rest, ok := strings.Cut(args, " ")
	if !ok {
		return 0, domain.User{}, fmt.Errorf("expected \"<id> First Last | email | age\"")
	}

	id, err := parseID(idText)
	if err != nil {
		return 0, domain.User{}, err
	}

	user, err := parseUserArgs(rest)
	return id, user, err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user ID %q", s)
	}
	return id, nil
}

// renderList formats the users shown to a chat
func renderList(users []domain.User, loaded, total int, query string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "👥 Users: %d loaded of %d\n", loaded, total)
	if query != "" {
		fmt.Fprintf(&sb, "🔎 Filter %q: %d matches\n", query, len(users))
	}
	sb.WriteString("\n")

	if len(users) == 0 {
		sb.WriteString("No users to show.")
		return sb.String()
	}

	for i, u := range users {
		line := fmt.Sprintf("#%d %s, %s, %d\n", u.ID, u.FullName(), u.Email, u.Age)
		if sb.Len()+len(line) > maxMessageLen {
			fmt.Fprintf(&sb, "… and %d more", len(users)-i)
			break
		}
		sb.WriteString(line)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// describeError turns a service error into a short status message
func describeError(err error) string {
	var (
		verr *domain.ValidationError
		terr *domain.TransportError
		cerr *domain.CacheError
	)

	switch {
	case errors.As(err, &verr):
		return "⚠️ Invalid input: " + strings.Join(verr.Fields, ", ")
	case errors.Is(err, domain.ErrUserNotFound):
		return "📭 No such user"
	case errors.Is(err, domain.ErrIDConflict):
		return "⚠️ No free user ID, the list is out of sync with the server"
	case errors.As(err, &terr):
		return "❌ Server request failed, try again"
	case errors.As(err, &cerr):
		return "❌ Local cache is unavailable"
	case errors.Is(err, domain.ErrFetchInFlight):
		return "⏳ Still loading, try again in a moment"
	default:
		return "❌ " + err.Error()
	}
}
