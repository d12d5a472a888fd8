package services

// Services bundles every API area behind one value.
type Services struct {
	Auth           AuthService
	Events         EventService
	Posts          PostService
	Transactions   TransactionService
	Users          UserService
	Admins         AdminService
	UserManagement UserManagementService
}

func New(api API, store SessionStore) *Services {
	return &Services{
		Auth:           NewAuthService(api, store),
		Events:         NewEventService(api),
		Posts:          NewPostService(api),
		Transactions:   NewTransactionService(api),
		Users:          NewUserService(api),
		Admins:         NewAdminService(api),
		UserManagement: NewUserManagementService(api),
	}
}
