package queue

import "testing"

func TestValidStageTransition_ForwardChain(t *testing.T) {
	chain := [][2]string{
		{StageWaiting, StageTriage},
		{StageTriage, StageNurse},
		{StageNurse, StageDoctor},
		{StageDoctor, StageLab},
		{StageLab, StagePharmacy},
		{StagePharmacy, StageBilling},
		{StageBilling, StageCompleted},
		{StageCompleted, StageDischarged},
	}
	for _, pair := range chain {
		if !ValidStageTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
}

func TestValidStageTransition_DoctorBranches(t *testing.T) {
	for _, next := range []string{StageLab, StagePharmacy, StageBilling, StageCompleted} {
		if !ValidStageTransition(StageDoctor, next) {
			t.Errorf("expected doctor -> %s to be allowed", next)
		}
	}
	// Labs can send the patient back to the doctor.
	if !ValidStageTransition(StageLab, StageDoctor) {
		t.Error("expected lab -> doctor to be allowed")
	}
}

func TestValidStageTransition_Rejections(t *testing.T) {
	cases := [][2]string{
		{StageWaiting, StageDoctor},
		{StageTriage, StageWaiting},
		{StageDischarged, StageWaiting},
		{StageCompleted, StageTriage},
		{StageBilling, StagePharmacy},
	}
	for _, pair := range cases {
		if ValidStageTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestValidStage(t *testing.T) {
	for _, s := range []string{StageWaiting, StageTriage, StageNurse, StageDoctor,
		StageLab, StagePharmacy, StageBilling, StageCompleted, StageDischarged} {
		if !ValidStage(s) {
			t.Errorf("expected %s to be a valid stage", s)
		}
	}
	if ValidStage("radiology") {
		t.Error("unexpected stage accepted")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusWaiting, StatusCalled, StatusInProgress, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be a valid status", s)
		}
	}
	if ValidStatus("paused") {
		t.Error("unexpected status accepted")
	}
}
