package domain

type ID string

type User struct {
	ID            ID
	Username      string
	Log           []Exercise
	ExerciseCount int
}

type Summary struct {
	ID       ID
	Username string
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username}
}

// Clone copies the log so callers can filter it freely.
func (u User) Clone() User {
	c := u
	c.Log = make([]Exercise, len(u.Log))
	copy(c.Log, u.Log)
	return c
}
