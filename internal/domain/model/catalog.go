package model

// DefaultCatalog returns the built-in Mergington High School activity
// catalog, including the students already signed up at the start of
// the semester. The returned slice is freshly allocated on every call.
func DefaultCatalog() []Activity {
	return []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball",
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis techniques and compete in friendly matches",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"jordan@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Express creativity through painting, drawing and sculpture",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"isabella@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"lucas@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"noah@mergington.edu"},
		},
		{
			Name:            "Robotics Club",
			Description:     "Design, build and program robots for competitions",
			Schedule:        "Saturdays, 10:00 AM - 12:00 PM",
			MaxParticipants: 14,
			Participants:    []string{"ethan@mergington.edu", "mia@mergington.edu"},
		},
	}
}
