package document

import (
	"sort"
	"strings"

	"github.com/rubiescode/shule/core/user"
)

const accountCollection = "users"

type accountRepo struct {
	db *DB
}

var _ user.Repository = (*accountRepo)(nil)

func NewAccountRepository(db *DB) user.Repository {
	return &accountRepo{db: db}
}

func (repo *accountRepo) loadAll() (map[string]user.Account, error) {
	accts := make(map[string]user.Account)
	if err := repo.db.load(accountCollection, &accts); err != nil {
		return nil, err
	}
	if accts == nil {
		accts = make(map[string]user.Account)
	}
	return accts, nil
}

func sortedNames(accts map[string]user.Account) []string {
	names := make([]string, 0, len(accts))
	for name := range accts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (repo *accountRepo) CreateAccount(acct user.Account) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	if _, ok := accts[acct.Name]; ok {
		return user.Account{}, user.ErrAccountExists
	}
	accts[acct.Name] = acct
	if err := repo.db.save(accountCollection, accts); err != nil {
		return user.Account{}, err
	}
	return acct, nil
}

func (repo *accountRepo) QueryAllAccounts() ([]user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return nil, err
	}
	all := make([]user.Account, 0, len(accts))
	for _, name := range sortedNames(accts) {
		acct := accts[name]
		acct.Name = name
		all = append(all, acct)
	}
	return all, nil
}

func (repo *accountRepo) GetAccountByName(name string) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	acct, ok := accts[name]
	if !ok {
		return user.Account{}, user.ErrNotFound
	}
	acct.Name = name
	return acct, nil
}

func (repo *accountRepo) FirstAccountByUsername(username string) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	for _, name := range sortedNames(accts) {
		if acct := accts[name]; acct.Username == username {
			acct.Name = name
			return acct, nil
		}
	}
	return user.Account{}, user.ErrNotFound
}

func (repo *accountRepo) FirstAccountByUsernameAndRole(username string, role user.Role) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	for _, name := range sortedNames(accts) {
		if acct := accts[name]; acct.Username == username && acct.Role == role {
			acct.Name = name
			return acct, nil
		}
	}
	return user.Account{}, user.ErrNotFound
}

func (repo *accountRepo) GetAccountByUsernameAndName(username, name string) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	for _, key := range sortedNames(accts) {
		if acct := accts[key]; acct.Username == username && strings.EqualFold(key, name) {
			acct.Name = key
			return acct, nil
		}
	}
	return user.Account{}, user.ErrNotFound
}

func (repo *accountRepo) UpdateAccount(acct user.Account) (user.Account, error) {
	accts, err := repo.loadAll()
	if err != nil {
		return user.Account{}, err
	}
	if _, ok := accts[acct.Name]; !ok {
		return user.Account{}, user.ErrNotFound
	}
	accts[acct.Name] = acct
	if err := repo.db.save(accountCollection, accts); err != nil {
		return user.Account{}, err
	}
	return acct, nil
}

func (repo *accountRepo) UpdateAccounts(updates ...user.Account) error {
	accts, err := repo.loadAll()
	if err != nil {
		return err
	}
	for _, acct := range updates {
		if _, ok := accts[acct.Name]; !ok {
			return user.ErrNotFound
		}
		accts[acct.Name] = acct
	}
	return repo.db.save(accountCollection, accts)
}

func (repo *accountRepo) DeleteAccount(name string) error {
	accts, err := repo.loadAll()
	if err != nil {
		return err
	}
	if _, ok := accts[name]; !ok {
		return user.ErrNotFound
	}
	delete(accts, name)
	return repo.db.save(accountCollection, accts)
}

func (repo *accountRepo) ResetAccounts() error {
	return repo.db.reset(accountCollection)
}
