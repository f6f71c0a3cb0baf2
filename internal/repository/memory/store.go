// Package memory implements the stores backing the simulated services. All
// state lives in process memory and is owned by a single Store instance built
// at startup; nothing survives a restart except the registered-user file.
package memory

type Store struct {
	events        *EventStore
	reservations  *ReservationStore
	users         *UserStore
	notifications *NotificationStore
}

type Config struct {
	// UsersFile is where the registered-user set is persisted between runs.
	// Empty disables persistence entirely.
	UsersFile string
}

func NewStore(cfg Config) (*Store, error) {
	users, err := NewUserStore(cfg.UsersFile)
	if err != nil {
		return nil, err
	}

	return &Store{
		events:        NewEventStore(SeedEvents()),
		reservations:  NewReservationStore(),
		users:         users,
		notifications: NewNotificationStore(),
	}, nil
}

func (s *Store) Events() *EventStore               { return s.events }
func (s *Store) Reservations() *ReservationStore   { return s.reservations }
func (s *Store) Users() *UserStore                 { return s.users }
func (s *Store) Notifications() *NotificationStore { return s.notifications }
