package frames

// DemoSet returns a stock pose set for running without a manifest. It
// covers every tier and direction plus two closeups so all selection
// paths have something to pick.
func DemoSet() []Frame {
	return []Frame{
		{ID: 0, Pose: "idle_sway", Tier: TierLow, Direction: DirCenter, Type: TypeBody},
		{ID: 1, Pose: "idle_nod", Tier: TierLow, Direction: DirCenter, Type: TypeBody},
		{ID: 2, Pose: "step_left", Tier: TierMid, Direction: DirLeft, Type: TypeBody},
		{ID: 3, Pose: "step_right", Tier: TierMid, Direction: DirRight, Type: TypeBody},
		{ID: 4, Pose: "groove_center", Tier: TierMid, Direction: DirCenter, Type: TypeBody},
		{ID: 5, Pose: "arm_wave", Tier: TierMid, Direction: DirCenter, Type: TypeBody},
		{ID: 6, Pose: "jump_star", Tier: TierHigh, Direction: DirCenter, Type: TypeBody},
		{ID: 7, Pose: "kick_left", Tier: TierHigh, Direction: DirLeft, Type: TypeBody},
		{ID: 8, Pose: "kick_right", Tier: TierHigh, Direction: DirRight, Type: TypeBody},
		{ID: 9, Pose: "spin_pose", Tier: TierHigh, Direction: DirCenter, Type: TypeBody},
		{ID: 10, Pose: "face_front", Tier: TierMid, Direction: DirCenter, Type: TypeCloseup},
		{ID: 11, Pose: "face_side", Tier: TierMid, Direction: DirLeft, Type: TypeCloseup},
	}
}
