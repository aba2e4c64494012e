package reconcile

import (
	"Taxflow-Backend/entities"
	"context"
	"time"
)

// Store interfaces are the snapshot boundary: collections are loaded whole,
// the engines compute the next collection value, and only the entries that
// actually changed are written back.
type (
	DocumentStore interface {
		ListDocuments(ctx context.Context) ([]*entities.Document, error)
		UpsertDocuments(ctx context.Context, docs []*entities.Document) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]*entities.AccountingTransaction, error)
		UpsertTransactions(ctx context.Context, txs []*entities.AccountingTransaction) error
	}

	TaskStore interface {
		ListTasks(ctx context.Context) ([]*entities.TaskItem, error)
		UpsertTasks(ctx context.Context, tasks []*entities.TaskItem) error
	}
)

// Syncer re-establishes the document<->transaction link invariants and the
// missing-receipt task set. Mutating operations call it explicitly after
// changing either collection, which keeps the dependency order visible in the
// call graph.
type Syncer struct {
	documents    DocumentStore
	transactions TransactionStore
	tasks        TaskStore
}

func NewSyncer(documents DocumentStore, transactions TransactionStore, tasks TaskStore) *Syncer {
	return &Syncer{
		documents:    documents,
		transactions: transactions,
		tasks:        tasks,
	}
}

// AfterDocumentsChanged repairs transactions whose document link went
// dangling, then the document-side link sets, then the task list.
func (s *Syncer) AfterDocumentsChanged(ctx context.Context) error {
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return err
	}
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return err
	}

	now := time.Now()

	nextTxs, changed := SyncTransactionLinks(docs, txs, now)
	if changed {
		if err := s.transactions.UpsertTransactions(ctx, changedTransactions(txs, nextTxs)); err != nil {
			return err
		}
	}

	nextDocs, changed := SyncDocumentLinks(docs, nextTxs)
	if changed {
		if err := s.documents.UpsertDocuments(ctx, changedDocuments(docs, nextDocs)); err != nil {
			return err
		}
	}

	return s.regenerateTasks(ctx, nextTxs, now)
}

// AfterTransactionsChanged recomputes the document-side link sets and the
// task list.
func (s *Syncer) AfterTransactionsChanged(ctx context.Context) error {
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return err
	}
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return err
	}

	nextDocs, changed := SyncDocumentLinks(docs, txs)
	if changed {
		if err := s.documents.UpsertDocuments(ctx, changedDocuments(docs, nextDocs)); err != nil {
			return err
		}
	}

	return s.regenerateTasks(ctx, txs, time.Now())
}

func (s *Syncer) regenerateTasks(ctx context.Context, txs []*entities.AccountingTransaction, now time.Time) error {
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return err
	}
	nextTasks, changed := GenerateTasks(tasks, txs, now)
	if !changed {
		return nil
	}
	return s.tasks.UpsertTasks(ctx, changedTasks(tasks, nextTasks))
}

func changedTransactions(before, after []*entities.AccountingTransaction) []*entities.AccountingTransaction {
	var out []*entities.AccountingTransaction
	for i, tx := range after {
		if i >= len(before) || before[i] != tx {
			out = append(out, tx)
		}
	}
	return out
}

func changedDocuments(before, after []*entities.Document) []*entities.Document {
	var out []*entities.Document
	for i, doc := range after {
		if i >= len(before) || before[i] != doc {
			out = append(out, doc)
		}
	}
	return out
}

func changedTasks(before, after []*entities.TaskItem) []*entities.TaskItem {
	var out []*entities.TaskItem
	for i, task := range after {
		if i >= len(before) || before[i] != task {
			out = append(out, task)
		}
	}
	return out
}
