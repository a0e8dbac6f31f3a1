package domain

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Organization{},
		&OrganizationApprovedDomain{},
		&Team{},
		&TeamMember{},
		&Meeting{},
		&TeamInvitation{},
		&Notification{},
		&SuggestedAction{},
		&AnalyticsEvent{},
	}
}
