package scraper

import "testing"

func TestLoadBalanceURL(t *testing.T) {
	target := Target{TeamID: "768996150", SeasonID: "1560212138"}

	tests := []struct {
		name string
		base string
		page Page
		want string
	}{
		{
			name: "schedule",
			base: DefaultBaseURL,
			page: PageSchedule,
			want: "https://www.trackwrestling.com/tw/seasons/LoadBalance.jsp?seasonId=1560212138&gbId=36&pageName=TeamSchedule.jsp;teamId=768996150",
		},
		{
			name: "roster with trailing slash",
			base: DefaultBaseURL + "/",
			page: PageRoster,
			want: "https://www.trackwrestling.com/tw/seasons/LoadBalance.jsp?seasonId=1560212138&gbId=36&pageName=TeamRoster.jsp;teamId=768996150",
		},
		{
			name: "results",
			base: "http://localhost:8080",
			page: PageResults,
			want: "http://localhost:8080/tw/seasons/LoadBalance.jsp?seasonId=1560212138&gbId=36&pageName=TeamResults.jsp;teamId=768996150",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadBalanceURL(tt.base, target, tt.page); got != tt.want {
				t.Errorf("LoadBalanceURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadBalanceURL_CustomGBID(t *testing.T) {
	got := LoadBalanceURL(DefaultBaseURL, Target{TeamID: "1", SeasonID: "2", GBID: "40"}, PageRoster)
	want := "https://www.trackwrestling.com/tw/seasons/LoadBalance.jsp?seasonId=2&gbId=40&pageName=TeamRoster.jsp;teamId=1"
	if got != want {
		t.Errorf("LoadBalanceURL() = %q, want %q", got, want)
	}
}

func TestAjaxURL(t *testing.T) {
	got := AjaxURL(DefaultBaseURL, Target{TeamID: "1441922147", SeasonID: "842514138"}, "getTeamSchedule", DefaultSessionID, 1700000000000)
	want := "https://www.trackwrestling.com/tw/seasons/AjaxFunctions.jsp?TIM=1700000000000&twSessionId=kmgthfvfkl&function=getTeamSchedule&teamId=1441922147&seasonId=842514138"
	if got != want {
		t.Errorf("AjaxURL() = %q, want %q", got, want)
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		page     Page
		name     string
		jsp      string
		function string
		ajax     bool
	}{
		{PageSchedule, "schedule", "TeamSchedule.jsp", "getTeamSchedule", true},
		{PageRoster, "roster", "TeamRoster.jsp", "getTeamRoster", true},
		{PageResults, "results", "TeamResults.jsp", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.page.JSP(); got != tt.jsp {
				t.Errorf("JSP() = %q, want %q", got, tt.jsp)
			}
			function, ok := tt.page.AjaxFunction()
			if function != tt.function || ok != tt.ajax {
				t.Errorf("AjaxFunction() = %q, %v, want %q, %v", function, ok, tt.function, tt.ajax)
			}
		})
	}
}
