package promise

// Semaphore bounds how many jobs run at once. A job holding a ticket also
// holds one from every ancestor, so a parent caps all of its children
// together.
type Semaphore struct {
	Parent *Semaphore
	ticket line
	dark   line
}

func NewSemaphore(available uint64) *Semaphore {
	return (&Semaphore{}).Init(available)
}

func (s *Semaphore) Init(available uint64) *Semaphore {
	s.ticket = make(line, available)
	s.dark = make(line, available)
	s.Post(available)
	return s
}

// Then makes s the parent of child and returns s.
func (s *Semaphore) Then(child *Semaphore) *Semaphore {
	if child != nil {
		child.Parent = s
	}
	return s
}

func (s *Semaphore) Acquire() {
	for ; s != nil; s = s.Parent {
		s.Get(1)
	}
}

func (s *Semaphore) Release() {
	for ; s != nil; s = s.Parent {
		s.Post(1)
	}
}

func (s *Semaphore) Get(n uint64) {
	for i := uint64(0); i < n; i++ {
		<-s.ticket
	}
}

// Post hands out n tickets. Tickets owed to an earlier Reduce are swallowed
// first.
func (s *Semaphore) Post(n uint64) {
	go func() {
		for i := uint64(0); i < n; i++ {
			select {
			case <-s.dark:
			default:
				select {
				case s.ticket <- signal:
				case <-s.dark:
				}
			}
		}
	}()
}

// Reduce permanently removes n tickets. Free tickets are taken at once; the
// rest are owed and swallowed by later Posts, so running jobs keep theirs
// until they finish.
func (s *Semaphore) Reduce(n uint64) {
	for i := uint64(0); i < n; i++ {
		select {
		case <-s.ticket:
			continue
		default:
		}
		select {
		case <-s.ticket:
		case s.dark <- signal:
		default:
			go s.owe(n - i)
			return
		}
	}
}

func (s *Semaphore) owe(n uint64) {
	for i := uint64(0); i < n; i++ {
		select {
		case <-s.ticket:
		case s.dark <- signal:
		}
	}
}
