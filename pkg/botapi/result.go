package botapi

// Result holds whatever the called method returned. Only the field matching
// the action is populated.
type Result struct {
	MessageID    int
	Link         string
	Balance      StarAmount
	Transactions []StarTransaction
}

type StarAmount struct {
	Amount         int
	NanostarAmount int
}

type StarTransaction struct {
	ID       string
	Amount   int
	Date     int64
	Source   Party
	Receiver Party
}

// Party is the counterpart of a star transaction: a user or anything else
// (fragment, ads, other bots).
type Party interface {
	party()
}

type UserParty struct {
	User User
}

type OtherParty struct {
	Type string
}

func (*UserParty) party()  {}
func (*OtherParty) party() {}

// AsUser returns the user when p is a UserParty.
func AsUser(p Party) (User, bool) {
	u, ok := p.(*UserParty)
	if !ok || u == nil {
		return User{}, false
	}
	return u.User, true
}
