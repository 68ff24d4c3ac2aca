package jobapplication

import "github.com/pkg/errors"

var (
	ErrNotFound           = errors.New("candidature introuvable")
	ErrNoValidDiagnosis   = errors.New("aucun diagnostic d'éligibilité valide pour ce candidat")
	ErrInWaitingPeriod    = errors.New("délai de carence en cours, un prescripteur habilité doit valider l'éligibilité")
	ErrApprovalImpossible = errors.New("délivrance du PASS IAE impossible : identité du candidat non vérifiable")
	ErrHiresAfterPass     = errors.New("la date d'embauche est postérieure à la fin de validité du PASS IAE")
	ErrHiringStartMissing = errors.New("la date de début d'embauche est obligatoire")
	ErrCancelForbidden    = errors.New("annulation impossible : une fiche salarié a déjà été transmise")
	ErrCancelAIStock      = errors.New("annulation impossible pour une candidature issue du stock AI")
	ErrTransferSameSiae   = errors.New("transfert impossible vers la même structure")
	ErrTransferNotMember  = errors.New("transfert impossible : l'utilisateur doit être membre des deux structures")
	ErrPriorActionGEIQ    = errors.New("les actions préalables au recrutement sont réservées aux GEIQ")
)
