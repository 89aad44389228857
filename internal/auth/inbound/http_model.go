package inbound

type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Captcha         string `json:"captcha"`
	CaptchaExpected string `json:"captcha_expected"`
}

type SignupResponse struct {
	Username string `json:"username"`
	// TotpSecret is shown exactly once so the user can enroll an
	// authenticator app. It is never returned again.
	TotpSecret      string `json:"totp_secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

func (SignupResponse) Message() string {
	return "Signup successful. Scan the provisioning URI with your authenticator app."
}

type LoginRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Captcha         string `json:"captcha"`
	CaptchaExpected string `json:"captcha_expected"`
}

type LoginResponse struct {
	MfaRequired    bool   `json:"mfa_required"`
	ChallengeToken string `json:"challenge_token,omitempty"`
	Username       string `json:"username,omitempty"`
}

type Verify2FARequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

type Verify2FAResponse struct {
	Username string `json:"username"`
}

func (Verify2FAResponse) Message() string {
	return "Authentication successful."
}
