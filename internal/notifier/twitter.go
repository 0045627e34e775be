package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// TweetInterval is the pause between consecutive tweets
const TweetInterval = 2 * time.Second

// TwitterNotifier posts new matches to Twitter
type TwitterNotifier struct {
	client   *twitter.Client
	teamName string
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier(teamName string) (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client, teamName: teamName}, nil
}

// Notify posts one tweet per match, stopping at the first failure
func (n *TwitterNotifier) Notify(matches []match.MatchRecord) error {
	for i, m := range matches {
		tweet := FormatTweet(m, n.teamName)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for match %s: %w", match.GenerateID(m), err)
		}

		logger.Info("posted tweet", logger.Fields{
			"opponent": m.Opponent,
			"date":     m.Date,
		})

		// Rate limiting: wait between tweets
		if i < len(matches)-1 {
			time.Sleep(TweetInterval)
		}
	}

	return nil
}
