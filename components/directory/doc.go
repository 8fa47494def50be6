// Package directory serves a fiche directory over HTTP using the backend's
// routes and {"data": [...], "meta": {...}} envelope, so pkg/directory.HTTP
// can talk to it unchanged.
//
// Routes respond to GET and HEAD and accept limit and page parameters. The
// etablissement route filters on sigle_ea, the encadreur route on id, and the
// inscription route on niveau, parcours, annee_univ, etudiant and
// etat_formation_pratique.
package directory
