package round

import "errors"

var errInfoSelfNotPresent = errors.New("round: selfID not present in PartyIDs")
