package youtube

import "golang.org/x/oauth2"

// notifyingTokenSource observes silent token rotations performed by the
// underlying refreshing source and reports the new access token. The primary
// call never blocks on the observer.
type notifyingTokenSource struct {
	src       oauth2.TokenSource
	last      string
	onRefresh func(accessToken string)
}

func newNotifyingTokenSource(src oauth2.TokenSource, current string, onRefresh func(accessToken string)) *notifyingTokenSource {
	return &notifyingTokenSource{src: src, last: current, onRefresh: onRefresh}
}

func (s *notifyingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if s.onRefresh != nil {
			s.onRefresh(token.AccessToken)
		}
	}
	return token, nil
}
