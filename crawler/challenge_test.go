package crawler

import "testing"

func TestDetectChallenge(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		html    string
		blocked bool
	}{
		{
			name:    "Results",
			url:     "https://www.google.com/search?q=tomates",
			html:    `<html><body><div id="rso"><div class="tF2Cxc"><h3>Tomates</h3></div></div></body></html>`,
			blocked: false,
		},
		{
			name:    "ResultsMentioningRobots",
			url:     "https://www.google.com/search?q=robot",
			html:    `<html><body><div id="search"><h3>Je ne suis pas un robot : histoire du captcha</h3></div></body></html>`,
			blocked: false,
		},
		{
			name:    "SorryRedirect",
			url:     "https://www.google.com/sorry/index?continue=https://www.google.com/search",
			html:    `<html><body></body></html>`,
			blocked: true,
		},
		{
			name:    "CaptchaForm",
			url:     "https://www.google.com/search?q=tomates",
			html:    `<html><body><form id="captcha-form" action="index"><div id="recaptcha"></div></form></body></html>`,
			blocked: true,
		},
		{
			name:    "UnusualTrafficFrench",
			url:     "https://www.google.com/search?q=tomates",
			html:    `<html><body><p>Nos systèmes ont détecté un trafic exceptionnel sur votre réseau.</p></body></html>`,
			blocked: true,
		},
		{
			name:    "UnusualTrafficEnglish",
			url:     "https://www.google.com/search?q=tomatoes",
			html:    `<html><body><p>Our systems have detected Unusual Traffic from your computer network.</p></body></html>`,
			blocked: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reason, blocked := detectChallenge(tc.url, tc.html)
			if blocked != tc.blocked {
				t.Errorf("expected blocked=%v, got %v (%s)", tc.blocked, blocked, reason)
			}
			if blocked && reason == "" {
				t.Error("expected a reason for the block")
			}
		})
	}
}
