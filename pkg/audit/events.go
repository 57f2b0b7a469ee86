package audit

import "fmt"

// ResourceEvent records the outcome of a CRUD operation on an entity.
type ResourceEvent struct {
	Username     string
	ClientIP     string
	Operation    string // create, fetch, list, update, delete
	Kind         string // entity kind, e.g. "bid"
	ResourceID   string
	Success      bool
	ErrorMessage string
}

func (e ResourceEvent) MessageID() string {
	return e.Operation
}

func (e ResourceEvent) Message() string {
	subject := e.Kind
	if e.ResourceID != "" {
		subject = e.Kind + "/" + e.ResourceID
	}
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s", e.Username, e.Operation, subject)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.Username, e.Operation, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ResourceEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ResourceEvent) Facility() int {
	return FacilityAuth
}

func (e ResourceEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"kind":     e.Kind,
			"resource": e.ResourceID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}

// AuthenticateEvent records a login attempt.
type AuthenticateEvent struct {
	Username     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Username)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    resultString(e.Success),
		},
	}
}

// RegisterEvent records a user registration.
type RegisterEvent struct {
	Username     string
	Role         string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %s registered with role %s", e.Username, e.Role)
	}
	msg := fmt.Sprintf("failed to register user %s", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
			"role": e.Role,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    resultString(e.Success),
		},
	}
}

// PasswordEvent records a password change.
type PasswordEvent struct {
	Username     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e PasswordEvent) MessageID() string {
	return "password"
}

func (e PasswordEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("password changed for %s", e.Username)
	}
	msg := fmt.Sprintf("failed password change for %s", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e PasswordEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PasswordEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PasswordEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "password",
			"result":    resultString(e.Success),
		},
	}
}

func resultString(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
