package entity

// Reminder is a single note on the user's list. Reminders are append-only:
// they are created by set_reminder and removed only by the bulk clear.
type Reminder struct {
	Note      string  `json:"note"`
	Timestamp string  `json:"timestamp"`
	RemindAt  *string `json:"remind_at"`
}

// UserProfile is the durable per-user state. The JSON layout is the wire
// format of the profile file, so field names must stay stable.
type UserProfile struct {
	Name           *string           `json:"name"`
	FavoriteThings map[string]string `json:"favorite_things"`
	Interests      []string          `json:"interests"`
	Reminders      []Reminder        `json:"reminders"`
}

func DefaultProfile() *UserProfile {
	return &UserProfile{
		FavoriteThings: make(map[string]string),
		Interests:      []string{},
		Reminders:      []Reminder{},
	}
}

func (p *UserProfile) NameOr(fallback string) string {
	if p == nil || p.Name == nil || *p.Name == "" {
		return fallback
	}
	return *p.Name
}

func (p *UserProfile) SetName(name string) {
	p.Name = &name
}

// AddInterest appends an interest with set semantics. It reports whether
// the interest was actually added.
func (p *UserProfile) AddInterest(value string) bool {
	for _, existing := range p.Interests {
		if existing == value {
			return false
		}
	}
	p.Interests = append(p.Interests, value)
	return true
}
