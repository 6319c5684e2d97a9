package models

// SuspiciousIP maps to table `suspicious_ips`
type SuspiciousIP struct {
	ID int64
	IP string
}

// StolenCard maps to table `stolen_cards`
type StolenCard struct {
	ID     int64
	Number string
}
