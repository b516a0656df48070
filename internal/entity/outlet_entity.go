package entity

// Outlet is one physical store location. Fields mirror the read-only
// columns the SQL translator is allowed to project.
type Outlet struct {
	Id           int64
	Name         string
	Address      string
	Area         string
	State        string
	OpeningTime  string
	ClosingTime  string
	DirectionUrl string
}
