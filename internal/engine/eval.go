// Package engine implements static evaluation and the search on top of it.
package engine

import "github.com/hailam/chessplay/internal/board"

// Material values in centipawns, indexed by board.PieceType.
var pieceValues = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Mobility weights per piece type: knight, bishop, rook, queen.
const (
	mobilityKnightWeight = 4
	mobilityBishopWeight = 3
	mobilityRookWeight   = 2
	mobilityQueenWeight  = 1
)

// Pawn structure constants.
const (
	doubledPawnPenalty    = -15
	isolatedPawnPenalty   = -25
	passedPawnBase        = 20
	passedPawnPerRank     = 15
	backwardPawnPenalty   = -15
	connectedPawnBonus    = 5
	passedPawnEndgameMult = 2 // doubled in the endgame, per spec §4.5.4
)

// Space and center control.
const (
	spaceWeight          = 2
	centerOccupantBonus  = 20
	centerPawnControl    = 15
	extendedCenterBonus  = 5
)

// King safety.
const (
	kingShieldBonus      = 10
	kingOpenFilePenalty  = -20
	kingSemiOpenPenalty  = -10
)

// Tempo / development (opening only).
const (
	undevelopedMinorPenalty = -10
	castledKingBonus        = 15
	developmentMinPieces    = 20
)

// Pattern terms.
const (
	bishopPairBonus        = 35
	badBishopPenaltyPerPawn = -6
	knightForkBonus        = 40
	doubledRooksBonus      = 20
	rookOn7thBonus         = 30
	rookBehindPassedBonus  = 15
	knightOutpostBonus     = 25
	rookOpenFileBonus      = 25
	rookSemiOpenFileBonus  = 12
	fianchettoBonus        = 10
	connectedRooksBonus    = 8
	pinBonus               = 15
	weakSquareBonus        = 5
)

// Trapped-piece penalties.
const (
	trappedPieceMildPenalty   = -50
	trappedRookSeverePenalty  = -100
)

// Three-phase piece-square tables, generated in init (see genPST). Indexed
// [phase][pieceType][square], square in the spec's a8=0..h1=63 order.
const (
	phaseOpening = iota
	phaseMiddlegame
	phaseEndgame
	phaseCount
)

var pst [phaseCount][6]*[64]int

// centrality returns 0..3, peaking at the board's four center files/ranks —
// the building block every non-pawn PST is shaped from.
func centrality(x int) int {
	d := x
	if 7-x < d {
		d = 7 - x
	}
	return d
}

// genPST synthesizes opening/middlegame/endgame piece-square tables from a
// handful of geometric terms (file/rank centrality, pawn advancement,
// distance to the back rank) rather than hand-copied numbers: the concrete
// PeSTO-style tables this pattern is grounded on ship as generated code, not
// literal constants, in the reference this approach comes from.
func genPST() {
	for phase := 0; phase < phaseCount; phase++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			table := new([64]int)
			for sq := 0; sq < 64; sq++ {
				file := sq % 8
				rank := sq / 8 // 0 = rank 8, 7 = rank 1
				fc := centrality(file)
				rc := centrality(rank)
				switch pt {
				case board.Pawn:
					advance := 6 - rank // 0 on home rank, 5 just short of promotion
					advanceWeight := 6
					if phase == phaseEndgame {
						advanceWeight = 12
					}
					table[sq] = fc*4 + advance*advanceWeight
					if rank == 0 {
						table[sq] = 0 // promotion handled by mutation, not resting value
					}
				case board.Knight:
					w := 6
					table[sq] = (fc*2 + rc) * w / 2
					if file == 0 || file == 7 || rank == 0 || rank == 7 {
						table[sq] -= 20
					}
				case board.Bishop:
					table[sq] = (fc + rc) * 4
				case board.Rook:
					table[sq] = fc
					if phase != phaseOpening && rank == 1 {
						table[sq] += 20 // near the 7th rank from White's view
					}
				case board.Queen:
					table[sq] = fc + rc
				case board.King:
					switch phase {
					case phaseEndgame:
						table[sq] = (fc + rc) * 10
					default:
						table[sq] = -(fc+rc)*12 + 10
						if rank == 7 && (file == 6 || file == 1) {
							table[sq] += 30 // castled corner
						}
					}
				}
			}
			pst[phase][pt] = table
		}
	}
}

func init() {
	genPST()
}

// pstIndex mirrors sq for Black, matching §4.5.2: White reads the table
// directly, Black reads it mirrored and negated.
func pstIndex(sq board.Square, c board.Color) board.Square {
	if c == board.Black {
		return sq.Mirror()
	}
	return sq
}

// phaseFactor computes φ ∈ [0,1] per §4.5.3 from the position's current
// non-king material; interpolatedPST derives the table weights from it.
func phaseFactor(pos *board.Position) float64 {
	nonKing := 0
	for _, piece := range board.AllPieces {
		if piece.Type() == board.King {
			continue
		}
		nonKing += len(pos.Squares(piece)) * pieceValues[piece.Type()]
	}
	phi := 1 - float64(nonKing)/7800
	if phi < 0 {
		phi = 0
	}
	if phi > 1 {
		phi = 1
	}
	return phi
}

// interpolatedPST returns the phase-blended piece-square value for piece on
// sq, per §4.5.2/§4.5.3.
func interpolatedPST(piece board.Piece, sq board.Square, phi float64) float64 {
	idx := pstIndex(sq, piece.Color())
	open := float64(pst[phaseOpening][piece.Type()][idx])
	mid := float64(pst[phaseMiddlegame][piece.Type()][idx])
	end := float64(pst[phaseEndgame][piece.Type()][idx])

	var v float64
	if phi < 0.5 {
		f := 2 * phi
		v = open*(1-f) + mid*f
	} else {
		f := 2 * (phi - 0.5)
		v = mid*(1-f) + end*f
	}
	if piece.Color() == board.Black {
		v = -v
	}
	return v
}

// Evaluate returns the static evaluation of pos, signed from the
// side-to-move's perspective (§4.5). It is a pure function of the board: no
// search state, no history.
func Evaluate(pos *board.Position) int {
	phi := phaseFactor(pos)
	score := 0.0

	for _, piece := range board.AllPieces {
		sign := 1
		if piece.Color() == board.Black {
			sign = -1
		}
		count := len(pos.Squares(piece))
		score += float64(sign * count * pieceValues[piece.Type()])
		for _, sq := range pos.Squares(piece) {
			score += interpolatedPST(piece, sq, phi)
		}
	}

	score += float64(evaluatePawnStructure(pos))
	score += float64(evaluateMobilityAndSpace(pos))
	score += float64(evaluateCenterControl(pos))
	if phi < 0.7 {
		score += float64(evaluateKingSafety(pos))
	}
	if phi < 0.5 && totalPieceCount(pos) >= developmentMinPieces {
		score += float64(evaluateDevelopment(pos))
	}
	score += float64(evaluatePatterns(pos))
	score += float64(evaluateTrappedPieces(pos))

	total := int(score)
	if pos.SideToMove == board.Black {
		return -total
	}
	return total
}

func totalPieceCount(pos *board.Position) int {
	n := 0
	for _, piece := range board.AllPieces {
		n += len(pos.Squares(piece))
	}
	return n
}

func sign(c board.Color) int {
	if c == board.Black {
		return -1
	}
	return 1
}

// evaluatePawnStructure scores doubled, isolated, passed, backward and
// connected pawns per §4.5.4.
func evaluatePawnStructure(pos *board.Position) int {
	score := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		pawn := board.NewPiece(board.Pawn, color)
		squares := pos.Squares(pawn)

		fileCounts := [8]int{}
		for _, sq := range squares {
			fileCounts[sq.File()]++
		}

		for _, sq := range squares {
			file := sq.File()
			if fileCounts[file] > 1 {
				score += sign(color) * doubledPawnPenalty
			}

			hasNeighbor := false
			for _, df := range [2]int{-1, 1} {
				nf := file + df
				if nf >= 0 && nf <= 7 && fileCounts[nf] > 0 {
					hasNeighbor = true
				}
			}
			if !hasNeighbor {
				score += sign(color) * isolatedPawnPenalty
				continue
			}

			if isPassedPawn(pos, sq, color) {
				rankDist := sq.ChessRank()
				if color == board.White {
					rankDist = 8 - sq.ChessRank()
				} else {
					rankDist = sq.ChessRank() - 1
				}
				bonus := passedPawnBase + passedPawnPerRank*(6-rankDist)
				if bonus < passedPawnBase {
					bonus = passedPawnBase
				}
				if phaseFactor(pos) >= 0.5 {
					bonus *= passedPawnEndgameMult
				}
				score += sign(color) * bonus
			}

			if isBackward(pos, sq, color, fileCounts) {
				score += sign(color) * backwardPawnPenalty
			}
			if isConnected(pos, sq, color) {
				score += sign(color) * connectedPawnBonus
			}
		}
	}
	return score
}

func isPassedPawn(pos *board.Position, sq board.Square, color board.Color) bool {
	file := sq.File()
	enemyPawn := board.NewPiece(board.Pawn, color.Other())
	for _, esq := range pos.Squares(enemyPawn) {
		if abs(esq.File()-file) > 1 {
			continue
		}
		if color == board.White && esq.Rank() < sq.Rank() {
			return false
		}
		if color == board.Black && esq.Rank() > sq.Rank() {
			return false
		}
	}
	return true
}

func isBackward(pos *board.Position, sq board.Square, color board.Color, fileCounts [8]int) bool {
	file := sq.File()
	friendlyPawn := board.NewPiece(board.Pawn, color)
	for _, df := range [2]int{-1, 1} {
		nf := file + df
		if nf < 0 || nf > 7 {
			continue
		}
		for _, fsq := range pos.Squares(friendlyPawn) {
			if fsq.File() != nf {
				continue
			}
			if color == board.White && fsq.Rank() > sq.Rank() {
				return true
			}
			if color == board.Black && fsq.Rank() < sq.Rank() {
				return true
			}
		}
	}
	return false
}

func isConnected(pos *board.Position, sq board.Square, color board.Color) bool {
	friendlyPawn := board.NewPiece(board.Pawn, color)
	for _, fsq := range pos.Squares(friendlyPawn) {
		if fsq == sq {
			continue
		}
		if abs(fsq.File()-sq.File()) == 1 && abs(fsq.Rank()-sq.Rank()) <= 1 {
			return true
		}
	}
	return false
}

// evaluateMobilityAndSpace implements §4.5.5 (mobility) and §4.5.6 (space)
// from one pseudo-move sweep per side.
func evaluateMobilityAndSpace(pos *board.Position) int {
	weights := map[board.PieceType]int{
		board.Knight: mobilityKnightWeight,
		board.Bishop: mobilityBishopWeight,
		board.Rook:   mobilityRookWeight,
		board.Queen:  mobilityQueenWeight,
	}

	mobility := 0
	space := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		for pt, w := range weights {
			piece := board.NewPiece(pt, color)
			for _, from := range pos.Squares(piece) {
				dests := pseudoDestinations(pos, from, pt, color)
				mobility += sign(color) * w * len(dests)
				for _, d := range dests {
					if inEnemyHalf(d, color) {
						space += sign(color)
					}
				}
			}
		}
	}
	return mobility*2 + space*spaceWeight
}

// pseudoDestinations enumerates the raw reachable squares for one piece,
// delegating to the move generator's own (unfiltered) pseudo-move pass —
// exactly the pseudo-move count §4.5.5 and §4.5.11 ask the evaluation to
// weigh.
func pseudoDestinations(pos *board.Position, from board.Square, pt board.PieceType, us board.Color) []board.Square {
	return pos.PseudoMovesFor(from)
}

func inEnemyHalf(sq board.Square, us board.Color) bool {
	if us == board.White {
		return sq.Rank() < 4
	}
	return sq.Rank() >= 4
}

// evaluateCenterControl implements §4.5.7.
func evaluateCenterControl(pos *board.Position) int {
	center := []board.Square{
		board.NewSquare(3, 3), board.NewSquare(4, 3),
		board.NewSquare(3, 4), board.NewSquare(4, 4),
	}
	extended := []board.Square{}
	for f := 2; f <= 5; f++ {
		for r := 2; r <= 5; r++ {
			extended = append(extended, board.NewSquare(f, r))
		}
	}

	score := 0
	for _, sq := range center {
		p := pos.PieceAt(sq)
		if p != board.NoPiece {
			score += sign(p.Color()) * centerOccupantBonus
		}
	}
	for _, color := range [2]board.Color{board.White, board.Black} {
		pawn := board.NewPiece(board.Pawn, color)
		for _, fsq := range pos.Squares(pawn) {
			for _, d := range pawnAttackSquares(fsq, color) {
				for _, c := range center {
					if d == c {
						score += sign(color) * centerPawnControl
					}
				}
			}
		}
	}
	for _, sq := range extended {
		p := pos.PieceAt(sq)
		if p != board.NoPiece {
			score += sign(p.Color()) * extendedCenterBonus / 4
		}
	}
	return score
}

func pawnAttackSquares(sq board.Square, color board.Color) []board.Square {
	dir := 1
	if color == board.White {
		dir = -1
	}
	var out []board.Square
	for _, df := range [2]int{-1, 1} {
		nf := sq.File() + df
		nr := sq.Rank() + dir
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		out = append(out, board.NewSquare(nf, nr))
	}
	return out
}

// evaluateKingSafety implements §4.5.8, suppressed by the caller once the
// position is deep enough into the endgame.
func evaluateKingSafety(pos *board.Position) int {
	score := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		king := board.NewPiece(board.King, color)
		ksqs := pos.Squares(king)
		if len(ksqs) == 0 {
			continue
		}
		ksq := ksqs[0]
		shieldRank := ksq.Rank() - 1
		if color == board.Black {
			shieldRank = ksq.Rank() + 1
		}
		pawn := board.NewPiece(board.Pawn, color)
		enemyPawn := board.NewPiece(board.Pawn, color.Other())

		for f := ksq.File() - 1; f <= ksq.File()+1; f++ {
			if f < 0 || f > 7 {
				continue
			}
			hasOwn, hasEnemy := false, false
			for _, sq := range pos.Squares(pawn) {
				if sq.File() == f {
					hasOwn = true
				}
			}
			for _, sq := range pos.Squares(enemyPawn) {
				if sq.File() == f {
					hasEnemy = true
				}
			}
			if shieldRank >= 0 && shieldRank <= 7 && hasOwn {
				score += sign(color) * kingShieldBonus
			}
			if !hasOwn && !hasEnemy {
				score += sign(color) * kingOpenFilePenalty
			} else if !hasOwn {
				score += sign(color) * kingSemiOpenPenalty
			}
		}
	}
	return score
}

// evaluateDevelopment implements §4.5.9, only consulted in the opening with
// enough material still on the board.
func evaluateDevelopment(pos *board.Position) int {
	score := 0
	whiteMinorHomes := []board.Square{board.NewSquare(1, 7), board.NewSquare(6, 7), board.NewSquare(2, 7), board.NewSquare(5, 7)}
	blackMinorHomes := []board.Square{board.NewSquare(1, 0), board.NewSquare(6, 0), board.NewSquare(2, 0), board.NewSquare(5, 0)}

	for _, sq := range whiteMinorHomes {
		p := pos.PieceAt(sq)
		if p.Type() == board.Knight || p.Type() == board.Bishop {
			score += sign(board.White) * undevelopedMinorPenalty
		}
	}
	for _, sq := range blackMinorHomes {
		p := pos.PieceAt(sq)
		if p.Type() == board.Knight || p.Type() == board.Bishop {
			score += sign(board.Black) * undevelopedMinorPenalty
		}
	}

	if pos.Rights.WhiteKingMoved {
		if ksq := firstOrNoSquare(pos.Squares(board.WhiteKing)); ksq != board.NoSquare && ksq != board.E1 {
			score += sign(board.White) * castledKingBonus
		}
	}
	if pos.Rights.BlackKingMoved {
		if ksq := firstOrNoSquare(pos.Squares(board.BlackKing)); ksq != board.NoSquare && ksq != board.E8 {
			score += sign(board.Black) * castledKingBonus
		}
	}
	return score
}

func firstOrNoSquare(sqs []board.Square) board.Square {
	if len(sqs) == 0 {
		return board.NoSquare
	}
	return sqs[0]
}

// evaluatePatterns implements the bulk of §4.5.10: bishop pair, bad bishop,
// knight forks, doubled/connected rooks, rook on the 7th, rook behind a
// passed pawn, knight outposts, open/semi-open files, fianchetto, pins, and
// weak squares.
func evaluatePatterns(pos *board.Position) int {
	score := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		bishop := board.NewPiece(board.Bishop, color)
		bishops := pos.Squares(bishop)
		if len(bishops) >= 2 {
			score += sign(color) * bishopPairBonus
		}
		pawn := board.NewPiece(board.Pawn, color)
		for _, bsq := range bishops {
			onLight := (bsq.File()+bsq.Rank())%2 == 1
			blocking := 0
			for _, psq := range pos.Squares(pawn) {
				if ((psq.File()+psq.Rank())%2 == 1) == onLight {
					blocking++
				}
			}
			if blocking >= 3 {
				score += sign(color) * badBishopPenaltyPerPawn * blocking
			}
			if isFianchettoed(pos, bsq, color) {
				score += sign(color) * fianchettoBonus
			}
		}

		rook := board.NewPiece(board.Rook, color)
		rooks := pos.Squares(rook)
		fileCounts := map[int]int{}
		seventhRank := 1
		if color == board.Black {
			seventhRank = 6
		}
		for _, rsq := range rooks {
			fileCounts[rsq.File()]++
			if rsq.Rank() == seventhRank {
				score += sign(color) * rookOn7thBonus
			}
			if rookOnOpenFile(pos, rsq, color) {
				score += sign(color) * rookOpenFileBonus
			} else if rookOnSemiOpenFile(pos, rsq, color) {
				score += sign(color) * rookSemiOpenFileBonus
			}
			if rookBehindPassedPawn(pos, rsq, color) {
				score += sign(color) * rookBehindPassedBonus
			}
		}
		for _, n := range fileCounts {
			if n >= 2 {
				score += sign(color) * doubledRooksBonus
			}
		}
		if len(rooks) == 2 && rooksConnected(pos, rooks[0], rooks[1]) {
			score += sign(color) * connectedRooksBonus
		}

		knight := board.NewPiece(board.Knight, color)
		for _, nsq := range pos.Squares(knight) {
			if isOutpost(pos, nsq, color) {
				score += sign(color) * knightOutpostBonus
			}
			if knightForks(pos, nsq, color) {
				score += sign(color) * knightForkBonus
			}
		}

		score += sign(color) * countPins(pos, color) * pinBonus
		score += sign(color.Other()) * countWeakSquares(pos, color) * weakSquareBonus
	}
	return score
}

// rookBehindPassedPawn reports whether a friendly passed pawn shares the
// rook's file on the far side of it from the enemy.
func rookBehindPassedPawn(pos *board.Position, rsq board.Square, color board.Color) bool {
	pawn := board.NewPiece(board.Pawn, color)
	for _, psq := range pos.Squares(pawn) {
		if psq.File() != rsq.File() || !isPassedPawn(pos, psq, color) {
			continue
		}
		if color == board.White && rsq.Rank() > psq.Rank() {
			return true
		}
		if color == board.Black && rsq.Rank() < psq.Rank() {
			return true
		}
	}
	return false
}

// countPins counts enemy non-king pieces pinned to their king along a ray
// from one of color's sliding pieces: exactly one piece between the slider
// and the enemy king, and that piece belongs to the enemy.
func countPins(pos *board.Position, color board.Color) int {
	enemyKingSqs := pos.Squares(board.NewPiece(board.King, color.Other()))
	if len(enemyKingSqs) == 0 {
		return 0
	}
	king := enemyKingSqs[0]
	pins := 0
	for _, pt := range [2]board.PieceType{board.Bishop, board.Rook} {
		dirs := orthoDirsRef
		if pt == board.Bishop {
			dirs = diagDirsRef
		}
		piece := board.NewPiece(pt, color)
		for _, from := range pos.Squares(piece) {
			if rayHitsPinned(pos, from, king, dirs, color) {
				pins++
			}
		}
		queen := board.NewPiece(board.Queen, color)
		for _, from := range pos.Squares(queen) {
			if rayHitsPinned(pos, from, king, dirs, color) {
				pins++
			}
		}
	}
	return pins
}

var orthoDirsRef = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagDirsRef = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func rayHitsPinned(pos *board.Position, from, king board.Square, dirs [4][2]int, attacker board.Color) bool {
	for _, d := range dirs {
		f, r := from.File(), from.Rank()
		var between board.Square = board.NoSquare
		for {
			f += d[0]
			r += d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				break
			}
			sq := board.NewSquare(f, r)
			p := pos.PieceAt(sq)
			if p == board.NoPiece {
				continue
			}
			if sq == king {
				return between != board.NoSquare
			}
			if p.Color() == attacker {
				break
			}
			if between != board.NoSquare {
				break
			}
			between = sq
		}
	}
	return false
}

// countWeakSquares counts squares in front of color's king that no pawn of
// color can ever again defend — permanent holes a king walk or piece
// outpost could exploit.
func countWeakSquares(pos *board.Position, color board.Color) int {
	ksqs := pos.Squares(board.NewPiece(board.King, color))
	if len(ksqs) == 0 {
		return 0
	}
	ksq := ksqs[0]
	pawn := board.NewPiece(board.Pawn, color)
	weak := 0
	frontRank := ksq.Rank() - 1
	if color == board.Black {
		frontRank = ksq.Rank() + 1
	}
	if frontRank < 0 || frontRank > 7 {
		return 0
	}
	for f := ksq.File() - 1; f <= ksq.File()+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		canDefend := false
		for _, psq := range pos.Squares(pawn) {
			if abs(psq.File()-f) != 1 {
				continue
			}
			if color == board.White && psq.Rank() >= frontRank {
				canDefend = true
			}
			if color == board.Black && psq.Rank() <= frontRank {
				canDefend = true
			}
		}
		if !canDefend {
			weak++
		}
	}
	return weak
}

func isFianchettoed(pos *board.Position, sq board.Square, color board.Color) bool {
	var home board.Square
	switch {
	case color == board.White && sq == board.NewSquare(1, 6):
		home = board.NewSquare(1, 6) // b2 bishop
	case color == board.White && sq == board.NewSquare(6, 6):
		home = board.NewSquare(6, 6) // g2
	case color == board.Black && sq == board.NewSquare(1, 1):
		home = board.NewSquare(1, 1)
	case color == board.Black && sq == board.NewSquare(6, 1):
		home = board.NewSquare(6, 1)
	default:
		return false
	}
	pawn := board.NewPiece(board.Pawn, color)
	shieldRank := home.Rank() - 1
	if color == board.Black {
		shieldRank = home.Rank() + 1
	}
	for _, psq := range pos.Squares(pawn) {
		if psq.File() == home.File() && psq.Rank() == shieldRank {
			return true
		}
	}
	return false
}

func rookOnOpenFile(pos *board.Position, sq board.Square, color board.Color) bool {
	ownPawn := board.NewPiece(board.Pawn, color)
	enemyPawn := board.NewPiece(board.Pawn, color.Other())
	return !fileHasPiece(pos, ownPawn, sq.File()) && !fileHasPiece(pos, enemyPawn, sq.File())
}

func rookOnSemiOpenFile(pos *board.Position, sq board.Square, color board.Color) bool {
	ownPawn := board.NewPiece(board.Pawn, color)
	enemyPawn := board.NewPiece(board.Pawn, color.Other())
	return !fileHasPiece(pos, ownPawn, sq.File()) && fileHasPiece(pos, enemyPawn, sq.File())
}

func fileHasPiece(pos *board.Position, piece board.Piece, file int) bool {
	for _, sq := range pos.Squares(piece) {
		if sq.File() == file {
			return true
		}
	}
	return false
}

func rooksConnected(pos *board.Position, a, b board.Square) bool {
	if a.File() == b.File() {
		return clearBetween(pos, a, b, 0, sign2(b.Rank()-a.Rank()))
	}
	if a.Rank() == b.Rank() {
		return clearBetween(pos, a, b, sign2(b.File()-a.File()), 0)
	}
	return false
}

func sign2(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func clearBetween(pos *board.Position, a, b board.Square, df, dr int) bool {
	f, r := a.File()+df, a.Rank()+dr
	for board.NewSquare(f, r) != b {
		if !pos.IsEmpty(board.NewSquare(f, r)) {
			return false
		}
		f += df
		r += dr
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return false
		}
	}
	return true
}

func isOutpost(pos *board.Position, sq board.Square, color board.Color) bool {
	minRank, maxRank := 2, 4
	if color == board.Black {
		minRank, maxRank = 3, 5
	}
	if sq.Rank() < minRank || sq.Rank() > maxRank {
		return false
	}
	enemyPawn := board.NewPiece(board.Pawn, color.Other())
	for _, esq := range pos.Squares(enemyPawn) {
		if abs(esq.File()-sq.File()) != 1 {
			continue
		}
		if color == board.White && esq.Rank() < sq.Rank() {
			return false
		}
		if color == board.Black && esq.Rank() > sq.Rank() {
			return false
		}
	}
	return true
}

// knightForks reports whether the knight on sq currently attacks two or
// more enemy pieces worth more than a knight — a crude but cheap static
// fork signal (no lookahead, just the current attack set).
var knightForkOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func knightForks(pos *board.Position, sq board.Square, color board.Color) bool {
	hits := 0
	for _, d := range knightForkOffsets {
		nf, nr := sq.File()+d[0], sq.Rank()+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		target := pos.PieceAt(board.NewSquare(nf, nr))
		if target != board.NoPiece && target.Color() != color && pieceValues[target.Type()] > pieceValues[board.Knight] {
			hits++
		}
	}
	return hits >= 2
}

// evaluateTrappedPieces implements §4.5.11.
func evaluateTrappedPieces(pos *board.Position) int {
	score := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		for _, pt := range [4]board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
			piece := board.NewPiece(pt, color)
			for _, sq := range pos.Squares(piece) {
				n := len(pseudoDestinations(pos, sq, pt, color))
				if pt == board.Rook && n == 0 {
					score += sign(color) * trappedRookSeverePenalty
				} else if n <= 2 {
					score += sign(color) * trappedPieceMildPenalty
				}
			}
		}
	}
	return score
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
