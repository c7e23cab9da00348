package storage

import "testing"

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	records := []SessionRecord{
		{GameID: "tetris_cpu", Player: 1, Score: 120, Lines: 11, Pieces: 40, TopOuts: 1, Duration: 95},
		{GameID: "tetris_cpu", Player: 2, CPU: true, Score: 300, Lines: 28, Pieces: 44, Duration: 95},
		{GameID: "tetris", Player: 1, Score: 40, Lines: 4, Pieces: 12, TopOuts: 1, Duration: 30},
	}
	for _, rec := range records {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	cpu, err := store.RecentSessions("tetris_cpu", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(cpu) != 2 {
		t.Fatalf("Expected 2 tetris_cpu sessions, got %d", len(cpu))
	}

	// Newest first
	if cpu[0].Player != 2 || !cpu[0].CPU || cpu[0].Lines != 28 {
		t.Errorf("Unexpected newest session: %+v", cpu[0])
	}
	if cpu[1].Player != 1 || cpu[1].CPU || cpu[1].TopOuts != 1 || cpu[1].Duration != 95 {
		t.Errorf("Unexpected older session: %+v", cpu[1])
	}

	all, err := store.RecentSessions("", 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 2 || all[0].GameID != "tetris" {
		t.Errorf("Expected the 2 newest sessions across modes, got %+v", all)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScoreWithLines("tetris", 100, 7)
	store.SaveScoreWithLines("tetris", 300, 19)
	store.SaveScoreWithLines("tetris_duo", 50, 3)

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("Unexpected score stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if stats.BestLines != 19 || stats.TotalLines != 26 {
		t.Errorf("Unexpected line stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(all))
	}
	if all["tetris_duo"].HighScore != 50 || all["tetris_duo"].BestLines != 3 {
		t.Errorf("Unexpected tetris_duo stats: %+v", all["tetris_duo"])
	}
}
