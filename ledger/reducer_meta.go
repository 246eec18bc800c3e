package ledger

// ReduceMeta handles MetaAction variants: SetName replaces the
// current name (defaulting the cell if empty), BumpCounter increments
// the counter with saturating add. Both emit an event and return Ok;
// anything outside this jurisdiction is a Pass.
func ReduceMeta(store *Store, action Action) ApplyStatus {
	switch action.Kind {
	case ActionSetName:
		m, ok := store.MetaCell.Get()
		if !ok {
			m = Meta{}
		}
		m.Name = action.SetName.Name
		store.MetaCell.Set(m)
		store.Events.Append(setNameEvent(m.Name))
		return Ok()

	case ActionBumpCounter:
		m, ok := store.MetaCell.Get()
		if !ok {
			m = Meta{}
		}
		if m.Counter < ^uint64(0) {
			m.Counter++
		}
		store.MetaCell.Set(m)
		store.Events.Append(bumpCounterEvent(m.Counter))
		return Ok()

	default:
		return Pass(noJurisdictionReason)
	}
}
