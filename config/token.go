package config

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// AccessTokenEnv overrides the token file when set.
const AccessTokenEnv = "READMAIL_ACCESS_TOKEN"

// LoadAccessToken returns the stored access token, or "" when none is stored.
func LoadAccessToken(tokenFile string) (string, error) {
	if tok := os.Getenv(AccessTokenEnv); tok != "" {
		return tok, nil
	}
	if tokenFile == "" {
		return "", nil
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("unable to read token file %s: %w", tokenFile, err)
	}
	return tok.AccessToken, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
