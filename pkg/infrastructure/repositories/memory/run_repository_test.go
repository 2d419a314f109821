package memory

import (
	"sync"
	"testing"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/domain/entities"
)

func sampleResult() *dto.ScheduleResult {
	return &dto.ScheduleResult{
		Schedule: []entities.ScheduleItem{
			{Type: entities.ItemProduction, Machine: "Linea_1", Start: 0, End: 2, Duration: 2, Product: "A", Quantity: 200},
		},
		Summary: entities.Summary{TotalProduction: 1, QtyClient: 200, HorizonUsed: 2},
	}
}

func TestRunRepository_SaveAndGet(t *testing.T) {
	repo := NewRunRepository()

	run := repo.Save("optimized", sampleResult())
	if run.ID == "" {
		t.Fatal("Save() returned a run without an ID")
	}
	if run.Mode != "optimized" {
		t.Errorf("run.Mode = %s, want optimized", run.Mode)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatalf("Get(%s) error: %v", run.ID, err)
	}
	if got.Result.Summary.QtyClient != 200 {
		t.Errorf("stored QtyClient = %d, want 200", got.Result.Summary.QtyClient)
	}
}

func TestRunRepository_GetMissing(t *testing.T) {
	repo := NewRunRepository()
	if _, err := repo.Get("run-999999"); err == nil {
		t.Error("Get() on a missing run returned no error")
	}
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo := NewRunRepository()
	first := repo.Save("optimized", sampleResult())
	second := repo.Save("legacy", sampleResult())

	runs := repo.List()
	if len(runs) != 2 {
		t.Fatalf("List() returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Errorf("List() order = [%s %s], want newest first", runs[0].ID, runs[1].ID)
	}
}

func TestRunRepository_ConcurrentSaves(t *testing.T) {
	repo := NewRunRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Save("optimized", sampleResult())
		}()
	}
	wg.Wait()

	if repo.Len() != 20 {
		t.Errorf("Len() = %d after 20 concurrent saves, want 20", repo.Len())
	}
}
