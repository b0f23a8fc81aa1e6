package demo

// Seeded timestamps anchor the fixture data in early 2026 without depending
// on the wall clock.
const (
	seedEpoch = int64(1767225600) // 2026-01-01 00:00:00 UTC
	seedDay   = int64(86400)
)

// SeedStore returns a store populated with a deterministic repair-shop
// dataset. Ticket numbers span three thousand-blocks so suffix shorthand has
// history to probe, and the newest block holds the recent listing.
func SeedStore() *Store {
	customers := []Customer{
		{CustomerID: "cust-001", FullName: "Dana Smith", Email: "dana.smith@example.com",
			PhoneNumbers: []Phone{{Number: "5551234567"}}, CreatedAt: seedEpoch - 400*seedDay, LastUpdated: seedEpoch - 2*seedDay},
		{CustomerID: "cust-002", FullName: "Lee Wong", Email: "lee.wong@example.com",
			PhoneNumbers: []Phone{{Number: "5552345678"}, {Number: "5559990001"}}, CreatedAt: seedEpoch - 380*seedDay, LastUpdated: seedEpoch - 10*seedDay},
		{CustomerID: "cust-003", FullName: "Maria Alvarez", Email: "maria.alvarez@example.com",
			PhoneNumbers: []Phone{{Number: "5553456789"}}, CreatedAt: seedEpoch - 350*seedDay, LastUpdated: seedEpoch - 5*seedDay},
		{CustomerID: "cust-004", FullName: "Sam Okafor", Email: "sam.okafor@example.com",
			PhoneNumbers: []Phone{{Number: "5554567890"}}, CreatedAt: seedEpoch - 320*seedDay, LastUpdated: seedEpoch - 30*seedDay},
		{CustomerID: "cust-005", FullName: "Priya Patel", Email: "priya.patel@example.com",
			PhoneNumbers: []Phone{{Number: "5555678901"}}, CreatedAt: seedEpoch - 300*seedDay, LastUpdated: seedEpoch - 1*seedDay},
		{CustomerID: "cust-006", FullName: "Alex Chen",
			PhoneNumbers: []Phone{{Number: "5556789012"}}, CreatedAt: seedEpoch - 280*seedDay, LastUpdated: seedEpoch - 7*seedDay},
		{CustomerID: "cust-007", FullName: "Jordan Baker", Email: "jordan.baker@example.com",
			PhoneNumbers: []Phone{{Number: "5557890123"}}, CreatedAt: seedEpoch - 250*seedDay, LastUpdated: seedEpoch - 14*seedDay},
		{CustomerID: "cust-008", FullName: "Fatima Hassan", Email: "fatima.hassan@example.com",
			PhoneNumbers: []Phone{{Number: "5558901234"}}, CreatedAt: seedEpoch - 220*seedDay, LastUpdated: seedEpoch - 3*seedDay},
		{CustomerID: "cust-009", FullName: "Viktor Petrov",
			PhoneNumbers: []Phone{{Number: "5559012345"}}, CreatedAt: seedEpoch - 200*seedDay, LastUpdated: seedEpoch - 40*seedDay},
		{CustomerID: "cust-010", FullName: "Grace Kim", Email: "grace.kim@example.com",
			PhoneNumbers: []Phone{{Number: "5550123456"}}, CreatedAt: seedEpoch - 180*seedDay, LastUpdated: seedEpoch - 6*seedDay},
		{CustomerID: "cust-011", FullName: "Omar Haddad", Email: "omar.haddad@example.com",
			PhoneNumbers: []Phone{{Number: "5551112222"}}, CreatedAt: seedEpoch - 150*seedDay, LastUpdated: seedEpoch - 9*seedDay},
		{CustomerID: "cust-012", FullName: "Nina Rossi", Email: "nina.rossi@example.com",
			PhoneNumbers: []Phone{{Number: "5553334444"}}, CreatedAt: seedEpoch - 120*seedDay, LastUpdated: seedEpoch - 12*seedDay},
		{CustomerID: "cust-013", FullName: "Tom Smith", Email: "tom.smith@example.com",
			PhoneNumbers: []Phone{{Number: "5555556666"}}, CreatedAt: seedEpoch - 90*seedDay, LastUpdated: seedEpoch - 4*seedDay},
		{CustomerID: "cust-014", FullName: "Yuki Tanaka",
			PhoneNumbers: []Phone{{Number: "5557778888"}}, CreatedAt: seedEpoch - 60*seedDay, LastUpdated: seedEpoch - 20*seedDay},
		{CustomerID: "cust-015", FullName: "Claire Dubois", Email: "claire.dubois@example.com",
			PhoneNumbers: []Phone{{Number: "5559990000"}}, CreatedAt: seedEpoch - 30*seedDay, LastUpdated: seedEpoch - 1*seedDay},
	}

	type seed struct {
		number  int64
		subject string
		cust    int // index into customers
		status  string
		device  string
		ageDays int64
	}

	seeds := []seed{
		// Current block, also the recent listing.
		{36039, "Cracked screen replacement", 0, "New", "iPhone 14", 0},
		{36038, "Battery swap", 1, "New", "Pixel 8", 0},
		{36037, "Water damage assessment", 2, "In Progress", "iPhone 13", 1},
		{36036, "Charging port repair", 3, "In Progress", "Galaxy S23", 1},
		{36035, "Screen flickering", 4, "In Progress", "iPad Air", 2},
		{36034, "Keyboard replacement", 5, "Waiting on Parts", "MacBook Pro", 2},
		{36033, "Data recovery", 6, "In Progress", "ThinkPad X1", 3},
		{36032, "Cracked back glass", 7, "New", "iPhone 15", 3},
		{36031, "Speaker not working", 8, "In Progress", "Pixel 7", 4},
		{36030, "Camera lens replacement", 9, "Waiting on Parts", "iPhone 14 Pro", 4},
		{36029, "Battery draining fast", 10, "In Progress", "Galaxy S22", 5},
		{36028, "Broken power button", 11, "New", "iPhone 12", 5},
		{36027, "Screen and battery combo", 12, "In Progress", "Pixel 8 Pro", 6},
		{36026, "Liquid spill cleanup", 13, "In Progress", "MacBook Air", 6},
		{36025, "Touch not responding", 14, "New", "iPad Mini", 7},
		{36024, "Cracked screen replacement", 1, "Done", "iPhone 13", 8},
		{36023, "Hinge repair", 5, "Done", "Surface Laptop", 9},
		{36022, "Battery swap", 8, "Done", "iPhone 11", 10},
		{36021, "Microphone replacement", 3, "Done", "Galaxy S23", 11},
		{36020, "Screen replacement", 6, "Done", "Pixel 6", 12},
		// Previous block.
		{35999, "Cracked screen replacement", 2, "Done", "iPhone 12", 40},
		{35501, "Battery swap", 9, "Done", "Galaxy S21", 55},
		{35250, "Water damage assessment", 4, "Done", "iPhone 11", 70},
		{35100, "Screen replacement", 11, "Done", "Pixel 5", 80},
		{35035, "Charging port repair", 0, "Done", "iPhone 14", 85},
		{35010, "Data recovery", 13, "Done", "MacBook Pro", 88},
		{35005, "Cracked back glass", 7, "Done", "iPhone 13", 89},
		// Block before that.
		{34999, "Battery swap", 10, "Done", "iPhone 11", 120},
		{34750, "Keyboard replacement", 12, "Done", "MacBook Air", 135},
		{34500, "Screen flickering", 14, "Done", "iPad Pro", 150},
		{34100, "Cracked screen and battery", 1, "Done", "Pixel 8", 165},
		{34035, "Speaker not working", 5, "Done", "Galaxy S22", 170},
		{34020, "Camera lens replacement", 8, "Done", "iPhone 12", 172},
		{34005, "Touch not responding", 3, "Done", "iPad Air", 174},
	}

	tickets := make([]Ticket, len(seeds))
	for i, sd := range seeds {
		c := customers[sd.cust]
		tickets[i] = Ticket{
			TicketNumber: sd.number,
			Subject:      sd.subject,
			CustomerID:   c.CustomerID,
			Status:       sd.status,
			Device:       sd.device,
			CreatedAt:    seedEpoch - sd.ageDays*seedDay,
			CustomerName: c.FullName,
		}
	}

	return NewStore(customers, tickets)
}
