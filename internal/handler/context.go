package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	EmailCtxKey  ContextKey = "email"
	HotelCtxKey  ContextKey = "hotel"
	PeriodCtxKey ContextKey = "rosterPeriod"
)
