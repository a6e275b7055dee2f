package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Tokens identify a replay on the game server.
type Tokens struct {
	Game string
	User string
}

// RunTokenForm prompts for a game token and an optional user token.
func RunTokenForm(current Tokens) (Tokens, error) {
	tokens := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Game token").
				Value(&tokens.Game).
				Validate(requireToken),
			huh.NewInput().
				Title("User token").
				Description("Leave empty to fetch the game without player values").
				Value(&tokens.User),
		),
	)

	if err := form.Run(); err != nil {
		return current, fmt.Errorf("token entry cancelled: %w", err)
	}

	tokens.Game = strings.TrimSpace(tokens.Game)
	tokens.User = strings.TrimSpace(tokens.User)
	return tokens, nil
}

func requireToken(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a game token is required")
	}
	return nil
}
