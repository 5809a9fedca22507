package team

// Tournament returns the registered sides of the cup in table order.
func Tournament() Roster {
	return Roster{
		{
			ID:    "feel-united",
			Name:  "Feel United",
			Short: "FEE",
			Players: []string{
				"Ninad", "Aditya Thakur", "Umair", "Sagar Awasthi",
				"Sandipan Bala", "Gahan", "Rishab Khanna",
			},
		},
		{
			ID:    "dhurandhars",
			Name:  "Dhurandhars",
			Short: "DHU",
			Players: []string{
				"Sagar Singh", "Raghu", "Sukhpal", "Mayank",
				"Manish Pandey", "Bharath Kumar", "Shashank",
			},
		},
		{
			ID:    "goaldiggers",
			Name:  "The Goaldiggers",
			Short: "GDG",
			Players: []string{
				"Parth Jhawar", "Abdul Rehman", "Pratham P", "Durgesh Suthar",
				"Navdeep", "Rajendra Ranka", "Dhrouv Pujari",
			},
		},
		{
			ID:    "userflow",
			Name:  "Userflow United",
			Short: "UFU",
			Players: []string{
				"Sumedh Zope", "Avaneesh Kulkarni", "Kushal", "Jalaj Varshney",
				"Anurag Kumar Singh", "Sandeep Xavier", "Hriday Bhatia",
			},
		},
	}
}
