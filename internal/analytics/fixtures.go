package analytics

type PageStat struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Views   int    `json:"views"`
	AvgTime string `json:"avgTime"`
}

type TrafficSource struct {
	Source     string `json:"source"`
	Visitors   int    `json:"visitors"`
	Percentage int    `json:"percentage"`
}

type DeviceShare struct {
	Desktop int `json:"desktop"`
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
}

type CountryStat struct {
	Country    string `json:"country"`
	Visitors   int    `json:"visitors"`
	Percentage int    `json:"percentage"`
}

func TopPages() []PageStat {
	return []PageStat{
		{Path: "/", Title: "Home", Views: 12500, AvgTime: "2:34"},
		{Path: "/ai-powered-ecommerce", Title: "AI E-Commerce", Views: 8200, AvgTime: "3:45"},
		{Path: "/saas-task-manager", Title: "Task Manager", Views: 6800, AvgTime: "4:12"},
		{Path: "/ai-resume-analyzer", Title: "Resume Analyzer", Views: 5400, AvgTime: "5:30"},
		{Path: "/admin-dashboard", Title: "Admin Dashboard", Views: 4200, AvgTime: "3:15"},
		{Path: "/cpp-dev-tools", Title: "C++ Tools", Views: 3800, AvgTime: "6:20"},
	}
}

func TrafficSources() []TrafficSource {
	return []TrafficSource{
		{Source: "Organic Search", Visitors: 45000, Percentage: 35},
		{Source: "Direct", Visitors: 32000, Percentage: 25},
		{Source: "Social Media", Visitors: 25600, Percentage: 20},
		{Source: "Referral", Visitors: 15400, Percentage: 12},
		{Source: "Email", Visitors: 10200, Percentage: 8},
	}
}

func Devices() DeviceShare {
	return DeviceShare{Desktop: 58, Mobile: 35, Tablet: 7}
}

func Geographic() []CountryStat {
	return []CountryStat{
		{Country: "United States", Visitors: 35000, Percentage: 28},
		{Country: "United Kingdom", Visitors: 15000, Percentage: 12},
		{Country: "Germany", Visitors: 12000, Percentage: 10},
		{Country: "Egypt", Visitors: 10000, Percentage: 8},
		{Country: "India", Visitors: 9000, Percentage: 7},
		{Country: "Other", Visitors: 44000, Percentage: 35},
	}
}
